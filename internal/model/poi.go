package model

// POI - точка интереса (достопримечательность, музей и т.п.), найденная для города.
type POI struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Category string   `json:"category" yaml:"category"`
	Photo    string   `json:"photo" yaml:"photo"`
	Photos   []string `json:"photos,omitempty" yaml:"photos,omitempty"`
}
