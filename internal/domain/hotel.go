package domain

// Typed views over the three collections. The API serves raw documents, so
// these only carry the fields the client renders.

type Hotel struct {
	ID        string `json:"_id"`
	HotelName string `json:"hotel_name"`
	ChainName string `json:"chain_name"`
	City      string `json:"city"`
	Country   string `json:"country"`
}

type City struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

type Country struct {
	ID             string `json:"_id"`
	Country        string `json:"country"`
	CountryISOCode string `json:"countryisocode"`
}
