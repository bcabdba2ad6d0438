// Package position splits cleaned records into one subset per role.
package position

import "github.com/okian/depthchart/internal/domain/model"

// Partition is the result of Split.
type Partition struct {
	Subsets   map[model.Role][]model.PlayerSeasonRecord
	Discarded int
}

// Split partitions records by role, keeping input order within each role.
// Records of other positions are counted in Discarded. Each record is
// projected onto its role's columns.
func Split(recs []model.PlayerSeasonRecord) Partition {
	p := Partition{Subsets: make(map[model.Role][]model.PlayerSeasonRecord, len(model.Roles))}
	for _, r := range model.Roles {
		p.Subsets[r] = []model.PlayerSeasonRecord{}
	}
	for _, rec := range recs {
		role, ok := model.ParseRole(rec.Position)
		if !ok {
			p.Discarded++
			continue
		}
		p.Subsets[role] = append(p.Subsets[role], Project(role, rec))
	}
	return p
}

// Project returns rec with every stat outside role's columns zeroed.
// QB keeps passing and rushing, RB and WR keep rushing and receiving,
// TE keeps receiving. Identity fields and fumbles lost are always kept.
func Project(role model.Role, rec model.PlayerSeasonRecord) model.PlayerSeasonRecord {
	s := rec.Stats
	out := model.Stats{FumblesLost: s.FumblesLost}

	if role == model.RoleQB {
		out.PassingYD = s.PassingYD
		out.PassingAttempt = s.PassingAttempt
		out.PassingTD = s.PassingTD
		out.Interceptions = s.Interceptions
	}
	if role == model.RoleQB || role == model.RoleRB || role == model.RoleWR {
		out.RushingYD = s.RushingYD
		out.RushingAttempt = s.RushingAttempt
		out.RushingTD = s.RushingTD
	}
	if role == model.RoleRB || role == model.RoleWR {
		out.YardsPerRush = s.YardsPerRush
	}
	if role != model.RoleQB {
		out.ReceivingYD = s.ReceivingYD
		out.Targets = s.Targets
		out.Receptions = s.Receptions
		out.YardsPerReception = s.YardsPerReception
		out.ReceivingTD = s.ReceivingTD
	}

	rec.Stats = out
	rec.Position = string(role)
	return rec
}
