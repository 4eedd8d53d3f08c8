package model

// NamedValue - пара "название - значение" для графиков.
type NamedValue struct {
	Name  string `db:"name" json:"name"`
	Value int    `db:"value" json:"value"`
}

// Analytics - сводные показатели для панели администратора.
type Analytics struct {
	TotalUsers          int          `json:"totalUsers"`
	TotalTrips          int          `json:"totalTrips"`
	PopularDestinations []NamedValue `json:"popularDestinations"`
	// Возрастных данных нет: корзины всегда нулевые, DemographicsStub = true.
	UserDemographics []NamedValue `json:"userDemographics"`
	DemographicsStub bool         `json:"demographicsStub"`
}
