package tournament

// drawChunk is the number of players in a full two-a-side group.
const drawChunk = 2 * teamSize

// PartitionDraw shuffles the selected players and splits them into 2v2
// groups. Leftovers are handled by count: one extra joins the last group's
// second side (2v3), two face each other (1v1), three play a three-way
// (1v1v1). A lone player with no full group becomes a solo entry.
//
// Every call draws a fresh permutation; no history is consulted.
func (e *Engine) PartitionDraw(selected []Player) ([]PairingGroup, error) {
	if len(selected) < 2 {
		return nil, ErrInsufficientPlayers
	}

	order := shuffled(selected, e.shuffler)
	full := len(order) / drawChunk
	groups := make([]PairingGroup, 0, full+1)

	for i := 0; i < full*drawChunk; i += drawChunk {
		groups = append(groups, PairingGroup{
			Kind:   KindDoubles,
			GroupA: clonePlayers(order[i : i+teamSize]),
			GroupB: clonePlayers(order[i+teamSize : i+drawChunk]),
		})
	}

	rest := order[full*drawChunk:]
	switch len(rest) {
	case 1:
		if len(groups) == 0 {
			groups = append(groups, PairingGroup{Kind: KindSoloUnmatched, GroupA: clonePlayers(rest)})
			break
		}
		last := groups[len(groups)-1]
		groups[len(groups)-1] = PairingGroup{
			Kind:   KindDoublesExtra,
			GroupA: last.GroupA,
			GroupB: append(clonePlayers(last.GroupB), rest[0]),
		}
	case 2:
		groups = append(groups, PairingGroup{
			Kind:   KindSingles,
			GroupA: clonePlayers(rest[:1]),
			GroupB: clonePlayers(rest[1:2]),
		})
	case 3:
		groups = append(groups, PairingGroup{
			Kind:   KindThreeWay,
			GroupA: clonePlayers(rest[:1]),
			GroupB: clonePlayers(rest[1:2]),
			GroupC: clonePlayers(rest[2:3]),
		})
	}
	return groups, nil
}

func clonePlayers(players []Player) []Player {
	out := make([]Player, len(players))
	copy(out, players)
	return out
}
