package game

// Counts is a full snapshot of the hand sizes a viewer may not see directly,
// plus the two side-stack sizes. The enemy slots follow the member iteration
// order: the first opposing player encountered, then the other.
type Counts struct {
	Teammate   int
	EnemyLeft  int
	EnemyRight int
	SideLeft   int
	SideRight  int
}

// CountsFor recomputes the snapshot for the given viewer
func (g *Game) CountsFor(viewer string) Counts {
	counts := Counts{
		SideLeft:  g.SideLeftCount(),
		SideRight: g.SideRightCount(),
	}

	seenEnemy := false
	for _, player := range g.players {
		if player == viewer {
			continue
		}

		n := g.HandCount(player)
		switch {
		case g.teams[player] == g.teams[viewer]:
			counts.Teammate = n
		case !seenEnemy:
			counts.EnemyLeft = n
			seenEnemy = true
		default:
			counts.EnemyRight = n
		}
	}

	return counts
}
