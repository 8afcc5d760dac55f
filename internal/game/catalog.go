package game

// AnswerOptions is the fixed label set shown for every question. Labels are
// canonical: scoring compares against them byte-for-byte, so the embedded
// quoting and punctuation are load-bearing.
var AnswerOptions = []string{
	"MRT Chime",
	"Bus Doors Closing",
	`Koel Bird ("Uwu" Bird)`,
	"Hawker Centre",
	"Ice Cream Scoop",
	"Kallang Wave",
	"Lion Dance",
	"Wet Market",
	"National Anthem",
	"Mahjong",
}

// OptionTranslations maps answer labels to the Chinese annotation displayed
// under each option. Annotations are presentation only and never take part
// in answer matching.
var OptionTranslations = map[string]string{
	"MRT Chime":               "地铁铃声",
	"Bus Doors Closing":       "巴士关门提示",
	`Koel Bird ("Uwu" Bird)`:  "噪鹃鸟 (\"呜呜\"鸟)",
	"Hawker Centre":           "小贩中心",
	"Ice Cream Scoop":         "冰淇淋车铃",
	"Kallang Wave":            "加冷人浪",
	"Lion Dance":              "舞狮",
	"Wet Market":              "巴杀",
	"National Anthem":         "国歌",
	"Mahjong":                 "麻将",
}

// Outlets a player can pick on the feedback screen when interested in a
// hearing test.
var Outlets = []string{
	"Ang Mo Kio",
	"Camden Medical (Hearing and Balance Centre)",
	"Clementi",
	"Farrer Park (Diagnostic Centre)",
	"Lucky Plaza (Diagnostic Centre)",
	"Novena (Diagnostic Centre)",
	"Parkway Parade",
	"Tampines",
	"Yishun",
}

// Sounds returns the canonical ordered question sequence.
func Sounds() []SoundQuestion {
	return []SoundQuestion{
		{
			ID:            1,
			Name:          "Mahjong",
			Description:   "The sound of mahjong tiles",
			AudioURL:      "/sg60-sound-game-mahjong.wav",
			CorrectAnswer: "Mahjong",
		},
		{
			ID:            2,
			Name:          "Hawker Sounds",
			Description:   "The bustling sounds of a Singapore hawker centre",
			AudioURL:      "/sg60-sound-game-hawker.mp3",
			CorrectAnswer: "Hawker Centre",
		},
		{
			ID:            3,
			Name:          "Birdsong",
			Description:   "The sound of the iconic Koel bird",
			AudioURL:      "/sg60-sound-game-koel-bird.mp3",
			CorrectAnswer: `Koel Bird ("Uwu" Bird)`,
		},
		{
			ID:            4,
			Name:          "Lion Dance",
			Description:   "Traditional lion dance performance",
			AudioURL:      "/sg60-sound-game-lion-dance.mp3",
			CorrectAnswer: "Lion Dance",
		},
		{
			ID:            5,
			Name:          "Ice Cream Cart",
			Description:   "The sound of an ice cream scoop",
			AudioURL:      "/sg-sound-game-ice-cream-bell.mp3",
			CorrectAnswer: "Ice Cream Scoop",
		},
		{
			ID:            6,
			Name:          "Wet Market",
			Description:   "The lively sounds of a traditional wet market",
			AudioURL:      "/sg60-sound-game-market.mp3",
			CorrectAnswer: "Wet Market",
		},
		{
			ID:            7,
			Name:          "MRT Chime",
			Description:   "Singapore MRT door closing chime",
			AudioURL:      "/sg60-sound-game-mrt.mp3",
			CorrectAnswer: "MRT Chime",
		},
		{
			ID:            8,
			Name:          "Bus Doors Closing",
			Description:   "Singapore bus door closing beep",
			AudioURL:      "/sg60-sound-game-bus-doors-closing.mp3",
			CorrectAnswer: "Bus Doors Closing",
		},
		{
			ID:            9,
			Name:          "Kallang Wave",
			Description:   "The roar of the Kallang Wave at the stadium",
			AudioURL:      "/sg60-sound-game-kallang-wave.mp3",
			CorrectAnswer: "Kallang Wave",
		},
		{
			ID:            10,
			Name:          "National Anthem",
			Description:   "Singapore's national anthem",
			AudioURL:      "/sg60-sound-game-national-anthem.mp3",
			CorrectAnswer: "National Anthem",
		},
	}
}
