package config

import "github.com/andresgonzalez1997/pricefeed/internal/models"

// purinaColumns is the 16-column canonical schema shared by both built-in
// Purina layout families.
func purinaColumns() models.Schema {
	return models.Schema{
		{Name: "product_number", Kind: models.KindText},
		{Name: "formula_code", Kind: models.KindText},
		{Name: "product_desc", Kind: models.KindText},
		{Name: "product_form", Kind: models.KindText},
		{Name: "unit_weight", Kind: models.KindText},
		{Name: "pallet_quantity", Kind: models.KindNumeric},
		{Name: "stocking_status", Kind: models.KindText},
		{Name: "min_order_quantity", Kind: models.KindNumeric},
		{Name: "days_lead_time", Kind: models.KindNumeric},
		{Name: "fob_or_dlv", Kind: models.KindText},
		{Name: "change_in_price", Kind: models.KindNumeric},
		{Name: "list_price", Kind: models.KindNumeric},
		{Name: "full_pallet_price", Kind: models.KindNumeric},
		{Name: "half_load_full_pallet_price", Kind: models.KindNumeric},
		{Name: "full_load_full_pallet_price", Kind: models.KindNumeric},
		{Name: "full_load_best_price", Kind: models.KindNumeric},
	}
}

func purinaLayout(dateRegion, locationRegion Region) *Layout {
	return &Layout{
		Columns:        purinaColumns(),
		HeaderTokens:   []string{"PRODUCT NUMBER", "PRODUCT", "FORMULA", "WEIGHT"},
		SectionColumn:  "species",
		LocationColumn: "plant_location",
		DateColumn:     "date_inserted",
		SourceColumn:   "source",
		SourceTag:      "pdf",
		DateRegion:     dateRegion,
		LocationRegion: locationRegion,
		KnownLocations: []string{"STATESVILLE"},
		WeightColumn:   "unit_weight",
		WeightHint:     "LB",
		WeightPattern:  `\d+\s*LB`,
		DescColumn:     "product_desc",
	}
}

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Warehouse.DatabasePath == "" {
		cfg.Warehouse.DatabasePath = "/usr/local/var/pricefeed/data/warehouse.db"
	}
	if cfg.Warehouse.Table == "" {
		cfg.Warehouse.Table = "competitor_price_list"
	}
	if cfg.Layouts == nil {
		cfg.Layouts = map[string]*Layout{
			// Region boxes carried over from the production tabula coordinates.
			"purina_vertical": purinaLayout(
				Region{Page: 1, Top: 54, Left: 10, Bottom: 82, Right: 254},
				Region{Page: 1, Top: 0, Left: 500, Bottom: 40, Right: 700},
			),
			"purina_horizontal": purinaLayout(
				Region{Page: 1, Top: 60, Left: 100, Bottom: 80, Right: 350},
				Region{Page: 1, Top: 10, Left: 400, Bottom: 40, Right: 700},
			),
		}
	}
	if cfg.DefaultLayout == "" {
		cfg.DefaultLayout = "purina_vertical"
	}
	if cfg.Watch.Extensions == nil {
		cfg.Watch.Extensions = []string{".pdf", ".xlsx", ".docx", ".odt", ".rtf", ".txt"}
	}
	if len(cfg.Watch.Directories) > 0 && cfg.Watch.Recursive == nil {
		t := true
		cfg.Watch.Recursive = &t
	}
}
