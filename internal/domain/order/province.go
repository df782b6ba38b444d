package order

// Province is a delivery province, identified by its slug
type Province struct {
	Slug string `json:"value"`
	Name string `json:"name"`
}

// Provinces lists every province the shop delivers to, in display order
var Provinces = []Province{
	{"phnompenh", "Phnom Penh"},
	{"siemreap", "Siem Reap"},
	{"sihanoukville", "Sihanoukville"},
	{"battambang", "Battambang"},
	{"kampongcham", "Kampong Cham"},
	{"kampongchhnang", "Kampong Chhnang"},
	{"kampongspeu", "Kampong Speu"},
	{"kampongthom", "Kampong Thom"},
	{"kampot", "Kampot"},
	{"kandal", "Kandal"},
	{"kep", "Kep"},
	{"kohkong", "Koh Kong"},
	{"kratie", "Kratie"},
	{"mondulkiri", "Mondulkiri"},
	{"oddarmeanchey", "Oddar Meanchey"},
	{"pailin", "Pailin"},
	{"preahsihanouk", "Preah Sihanouk"},
	{"preahvihear", "Preah Vihear"},
	{"pursat", "Pursat"},
	{"preyveng", "Prey Veng"},
	{"ratanakiri", "Ratanakiri"},
	{"stungtreng", "Stung Treng"},
	{"svayrieng", "Svay Rieng"},
	{"takeo", "Takeo"},
	{"tbongkhmum", "Tbong Khmum"},
}

var provinceBySlug = func() map[string]Province {
	m := make(map[string]Province, len(Provinces))
	for _, p := range Provinces {
		m[p.Slug] = p
	}
	return m
}()

// IsValidProvince reports whether slug names a delivery province
func IsValidProvince(slug string) bool {
	_, ok := provinceBySlug[slug]
	return ok
}

// ProvinceName returns the display name for slug, or slug itself if unknown
func ProvinceName(slug string) string {
	if p, ok := provinceBySlug[slug]; ok {
		return p.Name
	}
	return slug
}
