package service

var defaultCatalog = []string{
	"Flat Sheets King", "Flat Sheets Queen", "Pillow Cases King", "Bath Towel",
	"Bathmat", "Hand Towel", "Washcloth", "Robe",
	"Encasement King", "Encasement Queen", "Mattress Pad King", "Mattress Pad Queen",
	"Duvet King", "Duvet Queen", "Insert Duvet King", "Insert Duvet Queen",
	"Pool Towels", "Microfibras", "Bathroom Curtain", "Pillow KING",
	"Pillow Queen", "Blanket", "Toallas Iberostar", "MAPOS AZULES",
}

// DefaultCatalog 返回首次使用时写入的 24 项默认物品清单。
func DefaultCatalog() []string {
	out := make([]string, len(defaultCatalog))
	copy(out, defaultCatalog)
	return out
}
