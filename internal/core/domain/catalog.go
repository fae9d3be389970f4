package domain

// TagCategory groups curated Bengali culture tags.
type TagCategory string

// Curated tag categories, in catalog order.
const (
	CategoryFestivals  TagCategory = "festivals"
	CategoryFood       TagCategory = "food"
	CategoryArts       TagCategory = "arts"
	CategoryMusic      TagCategory = "music"
	CategoryLiterature TagCategory = "literature"
	CategoryAttire     TagCategory = "attire"
	CategoryCrafts     TagCategory = "crafts"
	CategoryPlaces     TagCategory = "places"
	CategoryRituals    TagCategory = "rituals"
)

// AllTagCategories returns the categories in catalog order.
func AllTagCategories() []TagCategory {
	return []TagCategory{
		CategoryFestivals,
		CategoryFood,
		CategoryArts,
		CategoryMusic,
		CategoryLiterature,
		CategoryAttire,
		CategoryCrafts,
		CategoryPlaces,
		CategoryRituals,
	}
}

// BengaliCultureTags is the curated catalog. Multi-word tags use '-'.
var BengaliCultureTags = map[TagCategory][]string{
	CategoryFestivals: {
		"durga-puja", "pohela-boishakh", "kali-puja", "saraswati-puja",
		"lakshmi-puja", "jamai-sashthi", "rath-yatra", "poush-mela",
		"basanta-utsav", "dol-jatra", "bhai-phonta", "nabanna",
		"charak-puja", "eid", "christmas-in-park-street",
	},
	CategoryFood: {
		"rosogolla", "mishti-doi", "sandesh", "hilsa", "ilish",
		"shorshe-ilish", "machher-jhol", "kosha-mangsho", "luchi",
		"phuchka", "jhalmuri", "telebhaja", "pitha", "payesh",
		"biryani", "kathi-roll", "mughlai-paratha", "shukto",
	},
	CategoryArts: {
		"alpana", "patachitra", "kantha", "terracotta", "chhau",
		"jatra", "rabindra-nritya", "kalighat-painting", "dokra",
	},
	CategoryMusic: {
		"rabindra-sangeet", "nazrul-geeti", "baul", "bhatiali",
		"kirtan", "adhunik", "shyama-sangeet",
	},
	CategoryLiterature: {
		"tagore", "rabindranath", "nazrul", "bankim", "sarat-chandra",
		"satyajit-ray", "feluda", "byomkesh", "sukumar-ray",
	},
	CategoryAttire: {
		"saree", "tant", "jamdani", "baluchari", "garad", "dhuti",
		"panjabi", "shankha-pola", "red-and-white-saree",
	},
	CategoryCrafts: {
		"shola", "kumartuli", "clay-idol", "conch-shell", "bell-metal",
		"madur", "nakshi-kantha",
	},
	CategoryPlaces: {
		"kolkata", "howrah-bridge", "victoria-memorial", "shantiniketan",
		"sundarbans", "darjeeling", "dhaka", "bishnupur", "kumortuli",
		"college-street", "dakshineswar", "ganga-ghat", "bengal",
	},
	CategoryRituals: {
		"dhunuchi-naach", "sindoor-khela", "bisarjan", "anjali",
		"pushpanjali", "aarti", "ulu-dhwani", "bhog",
	},
}

// AllBengaliTags returns every curated tag in catalog order with
// duplicates removed.
func AllBengaliTags() []string {
	seen := make(map[string]bool)
	var all []string
	for _, cat := range AllTagCategories() {
		for _, tag := range BengaliCultureTags[cat] {
			if seen[tag] {
				continue
			}
			seen[tag] = true
			all = append(all, tag)
		}
	}
	return all
}

// IsCuratedTag returns true if tag is part of the curated catalog.
func IsCuratedTag(tag string) bool {
	for _, t := range AllBengaliTags() {
		if t == tag {
			return true
		}
	}
	return false
}
