package depth_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/okian/depthchart/internal/domain/depth"
	"github.com/okian/depthchart/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func player(name, team string, fppg float64) model.ScoredPlayer {
	return model.ScoredPlayer{
		PlayerSeasonRecord: model.PlayerSeasonRecord{Player: name, Team: team, Games: 16},
		Derived:            model.Derived{FantasyPointsPerGame: fppg},
	}
}

func TestNthBest(t *testing.T) {
	Convey("Given a one-player team", t, func() {
		group := []model.ScoredPlayer{player("Solo", "KAN", 12)}

		Convey("When asking for the best player", func() {
			p, ok, err := depth.NthBest(group, 1, model.MetricFantasyPoints, depth.PolicyError)

			Convey("Then that player is returned", func() {
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)
				So(p.Player, ShouldEqual, "Solo")
			})
		})

		Convey("When asking for the second best under each policy", func() {
			_, _, errPolicy := depth.NthBest(group, 2, model.MetricFantasyPoints, depth.PolicyError)
			_, okExclude, errExclude := depth.NthBest(group, 2, model.MetricFantasyPoints, depth.PolicyExclude)
			legacy, okLegacy, errLegacy := depth.NthBest(group, 2, model.MetricFantasyPoints, depth.PolicyLegacy)

			Convey("Then error fails, exclude is missing and legacy falls back", func() {
				So(errors.Is(errPolicy, depth.ErrEmptyGroup), ShouldBeTrue)
				So(errExclude, ShouldBeNil)
				So(okExclude, ShouldBeFalse)
				So(errLegacy, ShouldBeNil)
				So(okLegacy, ShouldBeTrue)
				So(legacy.Player, ShouldEqual, "Solo")
			})
		})

		Convey("When asking for rank zero", func() {
			_, _, err := depth.NthBest(group, 0, model.MetricFantasyPoints, depth.PolicyLegacy)

			Convey("Then the rank is rejected", func() {
				So(errors.Is(err, depth.ErrInvalidRank), ShouldBeTrue)
			})
		})
	})

	Convey("Given a group with tied scores", t, func() {
		group := []model.ScoredPlayer{
			player("Low", "DAL", 5),
			player("TieA", "DAL", 10),
			player("TieB", "DAL", 10),
		}

		Convey("When ranking", func() {
			first, _, _ := depth.NthBest(group, 1, model.MetricFantasyPoints, depth.PolicyError)
			second, _, _ := depth.NthBest(group, 2, model.MetricFantasyPoints, depth.PolicyError)
			third, _, _ := depth.NthBest(group, 3, model.MetricFantasyPoints, depth.PolicyError)
			legacy, _, _ := depth.NthBest(group, 4, model.MetricFantasyPoints, depth.PolicyLegacy)

			Convey("Then ties keep input order and the input is untouched", func() {
				So(first.Player, ShouldEqual, "TieA")
				So(second.Player, ShouldEqual, "TieB")
				So(third.Player, ShouldEqual, "Low")
				So(legacy.Player, ShouldEqual, "Low")
				So(group[0].Player, ShouldEqual, "Low")
			})
		})
	})
}

func TestAggregate(t *testing.T) {
	Convey("Given two quarterbacks on two teams", t, func() {
		qbs := model.PositionSubset{Role: model.RoleQB, Rows: []model.ScoredPlayer{
			player("Q2", "NWE", 18),
			player("Q1", "KAN", 24),
		}}

		Convey("When aggregating the best per team", func() {
			entries, err := depth.Aggregate(qbs, model.MetricFantasyPoints, 1, depth.PolicyError)

			Convey("Then there is one row per team, sorted by team", func() {
				So(err, ShouldBeNil)
				So(len(entries), ShouldEqual, 2)
				So(entries[0].Team, ShouldEqual, "KAN")
				So(entries[0].Player, ShouldEqual, "Q1")
				So(entries[0].Slot.String(), ShouldEqual, "QB1")
				So(entries[1].Team, ShouldEqual, "NWE")
				So(entries[1].Score, ShouldEqual, 18)
			})
		})

		Convey("When aggregating a metric quarterbacks lack", func() {
			_, err := depth.Aggregate(qbs, model.MetricUsage, 1, depth.PolicyError)

			Convey("Then it fails", func() {
				So(errors.Is(err, depth.ErrUnsupportedMetric), ShouldBeTrue)
			})
		})

		Convey("When aggregating the second best", func() {
			_, errStrict := depth.Aggregate(qbs, model.MetricFantasyPoints, 2, depth.PolicyError)
			excluded, errExclude := depth.Aggregate(qbs, model.MetricFantasyPoints, 2, depth.PolicyExclude)

			Convey("Then the policy decides", func() {
				So(errors.Is(errStrict, depth.ErrEmptyGroup), ShouldBeTrue)
				So(errStrict.Error(), ShouldContainSubstring, "KAN")
				So(errStrict.Error(), ShouldContainSubstring, "QB2")
				So(errExclude, ShouldBeNil)
				So(excluded, ShouldBeEmpty)
			})
		})
	})
}

func TestParsePolicy(t *testing.T) {
	Convey("Given policy names", t, func() {
		p, err := depth.ParsePolicy("Legacy")
		So(err, ShouldBeNil)
		So(p, ShouldEqual, depth.PolicyLegacy)

		p, err = depth.ParsePolicy("")
		So(err, ShouldBeNil)
		So(p, ShouldEqual, depth.PolicyError)

		_, err = depth.ParsePolicy("impute")
		So(errors.Is(err, depth.ErrInvalidPolicy), ShouldBeTrue)
	})
}

func fullTeam(team string, base float64) map[model.Role][]model.ScoredPlayer {
	return map[model.Role][]model.ScoredPlayer{
		model.RoleQB: {player(team+"-QB", team, base+20)},
		model.RoleRB: {player(team+"-RB1", team, base+15), player(team+"-RB2", team, base+8)},
		model.RoleWR: {player(team+"-WR3", team, base+6), player(team+"-WR1", team, base+14), player(team+"-WR2", team, base+10)},
		model.RoleTE: {player(team+"-TE", team, base+7)},
	}
}

func subsets(teams ...map[model.Role][]model.ScoredPlayer) map[model.Role]model.PositionSubset {
	out := make(map[model.Role]model.PositionSubset)
	for _, r := range model.Roles {
		s := model.PositionSubset{Role: r}
		for _, tm := range teams {
			s.Rows = append(s.Rows, tm[r]...)
		}
		out[r] = s
	}
	return out
}

func TestBuild(t *testing.T) {
	Convey("Given two complete teams", t, func() {
		in := subsets(fullTeam("BUF", 0), fullTeam("ARI", 1))

		Convey("When building the depth chart", func() {
			c, err := depth.Build(in, model.MetricFantasyPoints, depth.PolicyError)

			Convey("Then teams and slots line up", func() {
				So(err, ShouldBeNil)
				So(c.Teams, ShouldResemble, []string{"ARI", "BUF"})
				So(c.Labels(), ShouldResemble, []string{"QB1", "RB1", "RB2", "WR1", "WR2", "WR3", "TE1"})
				So(c.Cells[1][3].Player, ShouldEqual, "BUF-WR1")
				So(c.Cells[1][5].Player, ShouldEqual, "BUF-WR3")
				So(c.Cells[0][0].Score, ShouldEqual, 21)
			})

			Convey("And columns and table views agree", func() {
				vals, present := c.Column(2)
				So(vals, ShouldResemble, []float64{9, 8})
				So(present, ShouldResemble, []bool{true, true})

				tbl := c.Table()
				So(tbl.Columns[0], ShouldEqual, "Team")
				So(tbl.Rows[1][0], ShouldEqual, "BUF")
				So(tbl.Rows[1][1], ShouldEqual, "20")
			})
		})

		Convey("When one team has no tight end", func() {
			short := fullTeam("CHI", 2)
			delete(short, model.RoleTE)
			in := subsets(fullTeam("BUF", 0), short)

			_, errStrict := depth.Build(in, model.MetricFantasyPoints, depth.PolicyError)
			c, errExclude := depth.Build(in, model.MetricFantasyPoints, depth.PolicyExclude)

			Convey("Then the error policy fails and exclude leaves a gap", func() {
				So(errors.Is(errStrict, depth.ErrEmptyGroup), ShouldBeTrue)
				So(errStrict.Error(), ShouldContainSubstring, "CHI")
				So(errExclude, ShouldBeNil)
				So(c.Cells[1][6].Present, ShouldBeFalse)
				So(c.Table().Rows[1][7], ShouldEqual, "")
			})

			Convey("And JSON encodes the gap as null", func() {
				b, err := json.Marshal(c)
				So(err, ShouldBeNil)
				So(string(b), ShouldContainSubstring, `"TE1":null`)
				So(string(b), ShouldContainSubstring, `"metric":"fantasy_points_per_game"`)
			})
		})
	})
}
