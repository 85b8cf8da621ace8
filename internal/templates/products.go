package templates

// ProductTemplate — отраслевая подача продукта: угол зрения и оффер,
// подставляемые в шаблоны кампаний.
type ProductTemplate struct {
	ID       string `json:"id"`
	Industry string `json:"industry"`
	Angle    string `json:"angle"`
	Offer    string `json:"offer"`
}

// Products — реестр отраслевых подач. Отрасль "" — запасной вариант
// для отраслей без собственных записей.
var Products = []ProductTemplate{
	{ID: "fitness-reset", Industry: "fitness", Angle: "fresh start without the overwhelm", Offer: "First week free, no contract"},
	{ID: "fitness-results", Industry: "fitness", Angle: "measurable progress over promises", Offer: "Free body composition scan"},
	{ID: "restaurant-weekday", Industry: "restaurants", Angle: "turn quiet weekdays into regulars", Offer: "Weekday happy hour, 2-for-1 mains"},
	{ID: "restaurant-local", Industry: "restaurants", Angle: "the neighborhood table", Offer: "Locals' loyalty card: 10th visit free"},
	{ID: "salon-refresh", Industry: "salons", Angle: "look like the best version of yourself", Offer: "20% off first appointment"},
	{ID: "realty-clarity", Industry: "real_estate", Angle: "clarity in a confusing market", Offer: "Free valuation within 48 hours"},
	{ID: "generic-intro", Industry: "", Angle: "try us with nothing to lose", Offer: "New customer discount"},
	{ID: "generic-proof", Industry: "", Angle: "results our customers talk about", Offer: "Free consultation"},
}

// ProductsForIndustry возвращает подачи для отрасли; если своих нет,
// возвращаются запасные.
func ProductsForIndustry(industry string) []ProductTemplate {
	var own, fallback []ProductTemplate
	for _, p := range Products {
		switch p.Industry {
		case industry:
			own = append(own, p)
		case "":
			fallback = append(fallback, p)
		}
	}
	if len(own) > 0 {
		return own
	}
	return fallback
}
