package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/goalkeep/internal/domain/model"
)

func TestMemoryStore(t *testing.T) {
	Convey("Given a memory store with the demo records", t, func() {
		ctx := context.Background()
		s, err := NewMemoryStore(DemoGoalkeepers(), DemoOpponents())
		So(err, ShouldBeNil)

		Convey("Goalkeepers keeps roster order", func() {
			gks, err := s.Goalkeepers(ctx)
			So(err, ShouldBeNil)
			So(len(gks), ShouldEqual, 3)
			So(gks[0].ID, ShouldEqual, "gk-1")
			So(gks[2].ID, ShouldEqual, "gk-3")
		})

		Convey("Returned slices are copies", func() {
			gks, _ := s.Goalkeepers(ctx)
			gks[0].Name = "changed"
			g, err := s.Goalkeeper(ctx, "gk-1")
			So(err, ShouldBeNil)
			So(g.Name, ShouldEqual, "Tomas Reis")
		})

		Convey("Unknown ids yield ErrNotFound", func() {
			_, err := s.Goalkeeper(ctx, "nope")
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
			_, err = s.Opponent(ctx, "nope")
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
		})

		Convey("Opponents are ordered by ranking", func() {
			ops := []model.Opponent{
				{ID: "b", Ranking: 4}, {ID: "a", Ranking: 1}, {ID: "c", Ranking: 2},
			}
			So(s.Replace(nil, ops), ShouldBeNil)
			got, err := s.Opponents(ctx)
			So(err, ShouldBeNil)
			So(got[0].ID, ShouldEqual, "a")
			So(got[1].ID, ShouldEqual, "c")
			So(got[2].ID, ShouldEqual, "b")
			o, err := s.Opponent(ctx, "b")
			So(err, ShouldBeNil)
			So(o.Ranking, ShouldEqual, 4)
		})

		Convey("Duplicate ids are rejected and the old set kept", func() {
			dup := []model.Goalkeeper{{ID: "x"}, {ID: "x"}}
			err := s.Replace(dup, nil)
			So(errors.Is(err, ErrInvalidID), ShouldBeTrue)
			gks, _ := s.Goalkeepers(ctx)
			So(len(gks), ShouldEqual, 3)
		})
	})
}

func TestSQLiteStore(t *testing.T) {
	Convey("Given an in-memory SQLite store", t, func() {
		ctx := context.Background()
		s, err := NewSQLiteStore(":memory:")
		So(err, ShouldBeNil)
		Reset(func() { _ = s.Close() })

		So(s.EnsureSchema(ctx), ShouldBeNil)
		So(s.EnsureSchema(ctx), ShouldBeNil)

		Convey("An empty database returns no records", func() {
			gks, err := s.Goalkeepers(ctx)
			So(err, ShouldBeNil)
			So(gks, ShouldBeEmpty)
			_, err = s.Goalkeeper(ctx, "gk-1")
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
		})

		Convey("Imported records round trip", func() {
			So(s.Import(ctx, DemoGoalkeepers(), DemoOpponents()), ShouldBeNil)

			g, err := s.Goalkeeper(ctx, "gk-2")
			So(err, ShouldBeNil)
			So(g, ShouldResemble, DemoGoalkeepers()[1])

			gks, err := s.Goalkeepers(ctx)
			So(err, ShouldBeNil)
			So(gks, ShouldResemble, DemoGoalkeepers())

			ops, err := s.Opponents(ctx)
			So(err, ShouldBeNil)
			So(len(ops), ShouldEqual, 3)
			So(ops[0].Ranking, ShouldBeLessThanOrEqualTo, ops[1].Ranking)

			o, err := s.Opponent(ctx, "op-1")
			So(err, ShouldBeNil)
			So(o, ShouldResemble, DemoOpponents()[0])
		})

		Convey("Import is idempotent", func() {
			So(s.Import(ctx, DemoGoalkeepers(), nil), ShouldBeNil)
			So(s.Import(ctx, DemoGoalkeepers(), nil), ShouldBeNil)
			gks, _ := s.Goalkeepers(ctx)
			So(len(gks), ShouldEqual, 3)
		})

		Convey("Invalid opponent bands roll back the import", func() {
			bad := []model.Opponent{{ID: "bad", HighPct: 60, MidPct: 30, LowPct: 20}}
			err := s.Import(ctx, DemoGoalkeepers(), bad)
			So(errors.Is(err, model.ErrInvalidOpponent), ShouldBeTrue)
			gks, _ := s.Goalkeepers(ctx)
			So(gks, ShouldBeEmpty)
		})
	})

	Convey("A file-backed store creates its directory", t, func() {
		path := filepath.Join(t.TempDir(), "nested", "goalkeep.db")
		s, err := NewSQLiteStore(path)
		So(err, ShouldBeNil)
		defer func() { _ = s.Close() }()
		So(s.EnsureSchema(context.Background()), ShouldBeNil)
	})

	Convey("An empty path is rejected", t, func() {
		_, err := NewSQLiteStore(" ")
		So(err, ShouldNotBeNil)
	})
}
