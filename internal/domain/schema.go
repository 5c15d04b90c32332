package domain

// PrimarySchema names the required columns of the primary export.
type PrimarySchema struct {
	Key          string `yaml:"key"`
	Equipment    string `yaml:"equipment"`
	AccidentDate string `yaml:"accident_date"`
	Category     string `yaml:"category"`
}

// SecondarySchema names the required columns of the secondary export.
type SecondarySchema struct {
	Key          string `yaml:"key"`
	FleetID      string `yaml:"fleet_id"`
	AccidentDate string `yaml:"accident_date"`
}

// Schema groups both column layouts.
type Schema struct {
	Primary   PrimarySchema   `yaml:"primary"`
	Secondary SecondarySchema `yaml:"secondary"`
}

// DefaultSchema matches the column headers of the SAP and Power BI exports.
func DefaultSchema() Schema {
	return Schema{
		Primary: PrimarySchema{
			Key:          "Notification",
			Equipment:    "Equipment",
			AccidentDate: "Accident Date",
			Category:     "Responsible Operations",
		},
		Secondary: SecondarySchema{
			Key:          "Notification Number",
			FleetID:      "Fleet No.",
			AccidentDate: "Accident Date",
		},
	}
}

// Merge fills every empty column name from def.
func (s Schema) Merge(def Schema) Schema {
	pick := func(v, d string) string {
		if v == "" {
			return d
		}
		return v
	}
	return Schema{
		Primary: PrimarySchema{
			Key:          pick(s.Primary.Key, def.Primary.Key),
			Equipment:    pick(s.Primary.Equipment, def.Primary.Equipment),
			AccidentDate: pick(s.Primary.AccidentDate, def.Primary.AccidentDate),
			Category:     pick(s.Primary.Category, def.Primary.Category),
		},
		Secondary: SecondarySchema{
			Key:          pick(s.Secondary.Key, def.Secondary.Key),
			FleetID:      pick(s.Secondary.FleetID, def.Secondary.FleetID),
			AccidentDate: pick(s.Secondary.AccidentDate, def.Secondary.AccidentDate),
		},
	}
}
