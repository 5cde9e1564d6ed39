package game

// StartingCarrots is what a brand new player begins with.
const StartingCarrots = 20

const (
	DefaultBodyColor  = "#D2691E"
	DefaultBellyColor = "#F5DEB3"
)

// Player is the avatar a connection controls.
type Player struct {
	Name      string
	Carrots   int
	Accessory string
	Colors    Colors
	Position  Point
}

func NewPlayer(name string) *Player {
	return &Player{
		Name:     name,
		Carrots:  StartingCarrots,
		Colors:   Colors{Body: DefaultBodyColor, Belly: DefaultBellyColor},
		Position: Point{X: 400, Y: 500},
	}
}

// AddCarrots credits n carrots and returns the new balance.
func (p *Player) AddCarrots(n int) int {
	p.Carrots += n
	return p.Carrots
}

// SpendCarrots debits n carrots. It returns false and leaves the balance
// untouched when the player cannot afford it.
func (p *Player) SpendCarrots(n int) bool {
	if n > p.Carrots {
		return false
	}
	p.Carrots -= n
	return true
}

func (p *Player) Display() Display {
	return Display{Carrots: p.Carrots}
}
