package models

// City is one of the supported Pakistani cities, stored by key.
type City string

// Cities maps each city key to its display name.
var Cities = map[City]string{
	"islamabad":       "Islamabad",
	"rawalpindi":      "Rawalpindi",
	"karachi":         "Karachi",
	"lahore":          "Lahore",
	"faisalabad":      "Faisalabad",
	"multan":          "Multan",
	"peshawar":        "Peshawar",
	"quetta":          "Quetta",
	"sialkot":         "Sialkot",
	"gujranwala":      "Gujranwala",
	"bahawalpur":      "Bahawalpur",
	"sargodha":        "Sargodha",
	"sukkur":          "Sukkur",
	"larkana":         "Larkana",
	"hyderabad":       "Hyderabad",
	"abbottabad":      "Abbottabad",
	"mardan":          "Mardan",
	"kasur":           "Kasur",
	"dera ghazi khan": "Dera Ghazi Khan",
	"sheikhupura":     "Sheikhupura",
}

func (c City) Valid() bool {
	_, ok := Cities[c]
	return ok
}

// Cause is the protest cause.
type Cause string

var Causes = map[Cause]string{
	"education":       "Education Rights",
	"healthcare":      "Healthcare Facilities",
	"electricity":     "Electricity & Utilities",
	"water":           "Water Shortage",
	"employment":      "Employment & Jobs",
	"human_rights":    "Human Rights",
	"women_rights":    "Women's Rights",
	"minority_rights": "Minority Rights",
	"price_hike":      "Price Hike & Inflation",
	"land_issues":     "Land & Property Issues",
	"political":       "Political Issues",
	"governance":      "Governance & Corruption",
	"environment":     "Environmental Issues",
	"other":           "Other Issues",
}

func (c Cause) Valid() bool {
	_, ok := Causes[c]
	return ok
}

// Category is the awareness blog category.
type Category string

const CategoryGeneral Category = "general"

var Categories = map[Category]string{
	"legal_rights":    "Legal Rights",
	"protest_safety":  "Protest Safety",
	"laws":            "Laws & Regulations",
	"guidelines":      "Protest Guidelines",
	"success_stories": "Success Stories",
	CategoryGeneral:   "General Awareness",
}

func (c Category) Valid() bool {
	_, ok := Categories[c]
	return ok
}

// UpdateType classifies a protest update.
type UpdateType string

const UpdateInfo UpdateType = "info"

var UpdateTypes = map[UpdateType]string{
	UpdateInfo: "General Update",
	"alert":    "Important Alert",
	"location": "Location Change",
	"time":     "Timing Update",
	"safety":   "Safety Update",
	"success":  "Success Update",
}

func (u UpdateType) Valid() bool {
	_, ok := UpdateTypes[u]
	return ok
}
