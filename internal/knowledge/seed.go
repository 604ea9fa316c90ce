package knowledge

// seededProcedures are the built-in response procedures loaded on first
// startup.
var seededProcedures = []struct {
	Name     string
	Details  string
	Category string
}{
	{
		Name:     "Cardiopulmonary Resuscitation (CPR)",
		Details:  "For unconscious victims who are not breathing normally. Place heel of one hand on center of chest, place other hand on top, interlock fingers, and compress at least 2 inches deep at 100-120 compressions per minute.",
		Category: "Medical",
	},
	{
		Name:     "Fire Evacuation",
		Details:  "Evacuate immediately using nearest safe exit. Do not use elevators. If smoke is present, stay low and cover nose and mouth with cloth. Meet at designated assembly point.",
		Category: "Fire",
	},
	{
		Name:     "Active Shooter",
		Details:  "Run: Evacuate quickly and quietly. Hide: Barricade doors, turn off lights, stay quiet. Fight: As last resort, act with aggression.",
		Category: "Crime",
	},
	{
		Name:     "Car Accident",
		Details:  "Check for injuries, call 911, move vehicles if safe to do so, exchange information, document scene with photos.",
		Category: "Accident",
	},
	{
		Name:     "Natural Disaster",
		Details:  "Follow evacuation orders, go to highest ground if flooding, shelter in place if advised, have emergency kit ready.",
		Category: "Disaster",
	},
}

func (s *SQLiteStore) seedProcedures() error {
	for _, p := range seededProcedures {
		_, err := s.db.Exec(`
			INSERT INTO procedures (id, name, details, emergency_type)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(name) DO NOTHING`,
			s.newID(), p.Name, p.Details, p.Category,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
