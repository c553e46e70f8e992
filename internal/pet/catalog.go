package pet

// Definition describes a purchasable pet. Definitions never change at runtime.
type Definition struct {
	ID          string
	Name        string
	Emoji       string
	Price       int
	Description string
	Color       string // lipgloss color for the pet's card
}

var catalog = []Definition{
	{ID: StarterPetID, Name: "Mochi", Emoji: "🐱", Price: 0, Description: "A loyal study companion.", Color: "#FDBA74"},
	{ID: "dog", Name: "Buster", Emoji: "🐶", Price: 100, Description: "Always happy to see you focus.", Color: "#FCD34D"},
	{ID: "bunny", Name: "Snowball", Emoji: "🐰", Price: 250, Description: "Fast worker, loves carrots.", Color: "#F9A8D4"},
	{ID: "frog", Name: "Pepe", Emoji: "🐸", Price: 500, Description: "Zen master of focus.", Color: "#86EFAC"},
	{ID: "robot", Name: "Unit-01", Emoji: "🤖", Price: 1000, Description: "Optimized for maximum efficiency.", Color: "#93C5FD"},
	{ID: "unicorn", Name: "Sparkles", Emoji: "🦄", Price: 2500, Description: "Legendary focus creature.", Color: "#D8B4FE"},
}

// Catalog returns a copy of every pet definition in store order.
func Catalog() []Definition {
	defs := make([]Definition, len(catalog))
	copy(defs, catalog)
	return defs
}

// LookupPet returns the definition for id.
func LookupPet(id string) (Definition, bool) {
	for _, def := range catalog {
		if def.ID == id {
			return def, true
		}
	}
	return Definition{}, false
}

// StarterPet returns the always-unlocked default pet.
func StarterPet() Definition {
	def, _ := LookupPet(StarterPetID)
	return def
}

// ActiveDefinition returns the definition of the profile's active pet,
// falling back to the starter pet for unknown ids.
func ActiveDefinition(p Profile) Definition {
	if def, ok := LookupPet(p.ActivePetID); ok {
		return def
	}
	return StarterPet()
}
