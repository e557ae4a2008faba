package margingame

// Player represents the identity of a player in the margin game.
//
// The defender chooses the margin and is the row player of the game; the
// attacker chooses the target probability and spread and is the column player.
type Player uint8

const (
	Defender Player = iota
	Attacker
)

var playerStr = [...]string{
	"Defender",
	"Attacker",
}

func (p Player) String() string {
	return playerStr[p]
}
