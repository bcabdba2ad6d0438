// Package sampledata generates synthetic season tables in the source
// schema, for demos and tests.
package sampledata

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"

	"github.com/okian/depthchart/internal/domain/table"
)

// Columns is the source header, in source order.
var Columns = []string{
	"Rk", "Player", "Tm", "FantPos", "Age", "G", "GS",
	"Cmp", "Att", "Yds", "TD", "Int",
	"Att.1", "Yds.1", "Y/A", "TD.1",
	"Tgt", "Rec", "Yds.2", "Y/R", "TD.2",
	"Fmb", "FL", "TD.3", "2PM", "2PP",
	"FantPt", "PPR", "DKPt", "FDPt", "VBD", "PosRank", "OvRank",
}

// Teams are the 32 team codes used by the source.
var Teams = []string{
	"ARI", "ATL", "BAL", "BUF", "CAR", "CHI", "CIN", "CLE",
	"DAL", "DEN", "DET", "GNB", "HOU", "IND", "JAX", "KAN",
	"LAC", "LAR", "MIA", "MIN", "NOR", "NWE", "NYG", "NYJ",
	"OAK", "PHI", "PIT", "SEA", "SFO", "TAM", "TEN", "WAS",
}

// Default generator settings.
const (
	defaultSeed        = 2019
	defaultMultiTeam   = 4
	defaultShortSeason = 6
)

// roster is the number of players generated per team and role.
var roster = []struct {
	pos   string
	count int
}{
	{"QB", 2}, {"RB", 3}, {"WR", 4}, {"TE", 2},
}

// Generator builds a deterministic season table.
type Generator struct {
	seed        int64
	teams       int
	multiTeam   int
	shortSeason int
	kickers     bool
}

// NewGenerator creates a generator with configuration options.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		seed:        defaultSeed,
		teams:       len(Teams),
		multiTeam:   defaultMultiTeam,
		shortSeason: defaultShortSeason,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// player is one generated stat line before formatting.
type player struct {
	name, team, pos string
	age, games      int
	cmp, att, yds   int
	td, ints        int
	rushAtt, rushYd int
	rushTD          int
	tgt, rec, recYd int
	recTD           int
	fmb, fl         int
}

// Generate returns the season table. Every team gets a full roster with
// at least five games per player, so the default pipeline settings
// produce a complete depth chart.
func (g *Generator) Generate() table.Table {
	rng := rand.New(rand.NewSource(g.seed)) //nolint:gosec // deterministic sample data
	var players []player

	for _, team := range Teams[:g.teams] {
		for _, slot := range roster {
			for depth := 1; depth <= slot.count; depth++ {
				players = append(players, g.regular(rng, team, slot.pos, depth))
			}
		}
		if g.kickers {
			players = append(players, player{
				name: team + " Kicker", team: team, pos: "K",
				age: 24 + rng.Intn(14), games: 16,
			})
		}
	}

	for i := 0; i < g.multiTeam; i++ {
		p := g.regular(rng, Teams[rng.Intn(g.teams)], roster[1+i%3].pos, 2)
		p.name = fmt.Sprintf("Traded Player %d", i+1)
		p.team = []string{"2TM", "3TM"}[i%2]
		players = append(players, p)
	}

	for i := 0; i < g.shortSeason; i++ {
		p := g.regular(rng, Teams[rng.Intn(g.teams)], roster[i%len(roster)].pos, 1)
		p.name = fmt.Sprintf("Injured Player %d", i+1)
		p.games = 1 + rng.Intn(4)
		players = append(players, p)
	}

	rows := make([][]string, len(players))
	for i, p := range players {
		rows[i] = p.row(i + 1)
	}
	return table.Table{Columns: append([]string(nil), Columns...), Rows: rows}
}

// regular draws a role-typical stat line. depth 1 is the starter; later
// depths get a smaller share of the volume.
func (g *Generator) regular(rng *rand.Rand, team, pos string, depth int) player {
	share := 1 / float64(depth)
	p := player{
		name:  fmt.Sprintf("%s %s%d", team, pos, depth),
		team:  team,
		pos:   pos,
		age:   21 + rng.Intn(14),
		games: 8 + rng.Intn(9),
		fmb:   rng.Intn(5),
	}
	p.fl = rng.Intn(p.fmb + 1)
	if depth == 1 && rng.Intn(8) == 0 {
		// Award markers and the source id suffix, stripped on ingest.
		p.name += `*+\` + team + pos + "00"
	}

	switch pos {
	case "QB":
		p.att = scaled(rng, 380, 620, share)
		p.cmp = int(float64(p.att) * (0.58 + rng.Float64()*0.12))
		p.yds = int(float64(p.att) * (6.2 + rng.Float64()*2.2))
		p.td = scaled(rng, 12, 42, share)
		p.ints = scaled(rng, 4, 18, share)
		p.rushAtt = scaled(rng, 20, 150, share)
		p.rushYd = int(float64(p.rushAtt) * (2 + rng.Float64()*5))
		p.rushTD = rng.Intn(7)
	case "RB":
		p.rushAtt = scaled(rng, 140, 330, share)
		p.rushYd = int(float64(p.rushAtt) * (3.4 + rng.Float64()*2))
		p.rushTD = scaled(rng, 2, 16, share)
		p.tgt = scaled(rng, 25, 110, share)
		p.rec = int(float64(p.tgt) * (0.7 + rng.Float64()*0.15))
		p.recYd = int(float64(p.rec) * (6 + rng.Float64()*4))
		p.recTD = rng.Intn(5)
	case "WR":
		p.tgt = scaled(rng, 70, 175, share)
		p.rec = int(float64(p.tgt) * (0.55 + rng.Float64()*0.15))
		p.recYd = int(float64(p.rec) * (10 + rng.Float64()*7))
		p.recTD = scaled(rng, 1, 14, share)
		p.rushAtt = rng.Intn(12)
		p.rushYd = p.rushAtt * rng.Intn(10)
	case "TE":
		p.tgt = scaled(rng, 35, 130, share)
		p.rec = int(float64(p.tgt) * (0.62 + rng.Float64()*0.15))
		p.recYd = int(float64(p.rec) * (9 + rng.Float64()*5))
		p.recTD = scaled(rng, 1, 11, share)
	}
	return p
}

// scaled draws from [lo, hi] and scales by share, never below 1.
func scaled(rng *rand.Rand, lo, hi int, share float64) int {
	v := float64(lo+rng.Intn(hi-lo+1)) * share
	return int(math.Max(1, math.Round(v)))
}

func (p player) row(rank int) []string {
	fantasy := float64(p.yds)*0.04 + float64(p.td)*4 - float64(p.ints)*2 +
		float64(p.rushYd+p.recYd)*0.1 + float64(p.rushTD+p.recTD)*6 - float64(p.fl)*2
	ppr := fantasy + float64(p.rec)

	return []string{
		itoa(rank), p.name, p.team, p.pos, itoa(p.age), itoa(p.games), itoa(p.games),
		blankZero(p.cmp), blankZero(p.att), blankZero(p.yds), blankZero(p.td), blankZero(p.ints),
		itoa(p.rushAtt), itoa(p.rushYd), rate(p.rushYd, p.rushAtt), itoa(p.rushTD),
		itoa(p.tgt), itoa(p.rec), itoa(p.recYd), rate(p.recYd, p.rec), itoa(p.recTD),
		itoa(p.fmb), itoa(p.fl), itoa(p.rushTD + p.recTD), "", "",
		ftoa(fantasy), ftoa(ppr), ftoa(ppr), ftoa(fantasy), "", "", itoa(rank),
	}
}

func itoa(v int) string { return strconv.Itoa(v) }

func ftoa(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) }

// blankZero leaves zero passing stats empty, as the source does for
// non-passers.
func blankZero(v int) string {
	if v == 0 {
		return ""
	}
	return itoa(v)
}

func rate(yards, n int) string {
	if n == 0 {
		return ""
	}
	return strconv.FormatFloat(float64(yards)/float64(n), 'f', 2, 64)
}
