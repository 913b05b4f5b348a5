package game

// Weapon is a ranged weapon configuration. Every weapon fires pooled
// projectiles; the stats below fully determine the projectile it spawns.
type Weapon struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Damage      int     `json:"damage"`
	Speed       float64 `json:"speed"`       // projectile speed, units per second
	MaxDistance float64 `json:"maxDistance"` // projectile range, units
	Cooldown    float64 `json:"cooldown"`    // seconds between shots
	Color       string  `json:"color"`       // projectile color tag for the render layer
}

// Weapons is the table of all available weapons.
var Weapons = map[string]Weapon{
	"blaster": {
		ID:          "blaster",
		Name:        "Blaster",
		Damage:      10,
		Speed:       28,
		MaxDistance: 30,
		Cooldown:    0.18,
		Color:       "#4ecdc4",
	},
	"repeater": {
		ID:          "repeater",
		Name:        "Repeater",
		Damage:      6,
		Speed:       34,
		MaxDistance: 24,
		Cooldown:    0.09,
		Color:       "#ffeaa7",
	},
	"cannon": {
		ID:          "cannon",
		Name:        "Cannon",
		Damage:      40,
		Speed:       20,
		MaxDistance: 40,
		Cooldown:    0.8,
		Color:       "#ff6b6b",
	},
}

// GetWeapon returns a weapon by ID, defaulting to the blaster.
func GetWeapon(id string) Weapon {
	if w, ok := Weapons[id]; ok {
		return w
	}
	return Weapons["blaster"]
}

// GetAllWeapons returns all weapons as a slice.
func GetAllWeapons() []Weapon {
	weapons := make([]Weapon, 0, len(Weapons))
	for _, w := range Weapons {
		weapons = append(weapons, w)
	}
	return weapons
}
