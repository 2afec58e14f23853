package draft_test

import (
	"errors"
	"math"
	"testing"

	"github.com/okian/skillcard/internal/domain/draft"
	"github.com/okian/skillcard/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNew(t *testing.T) {
	Convey("Given a new registration draft", t, func() {
		d := draft.New()

		Convey("Then it holds a single blank skill at the default level", func() {
			So(d.SkillCount(), ShouldEqual, 1)
			So(d.Skills(), ShouldResemble, []model.Skill{{Name: "", Level: 0.5}})
			So(d.Username(), ShouldBeEmpty)
			So(d.CanRemoveSkill(), ShouldBeFalse)
		})
	})
}

func TestFieldUpdates(t *testing.T) {
	Convey("Given a draft with some fields filled", t, func() {
		d := draft.New().WithUsername("alice").WithName("Alice")

		Convey("When the position is edited", func() {
			next := d.WithPosition("Engineer")

			Convey("Then only position changes and the original is untouched", func() {
				So(next.Position(), ShouldEqual, "Engineer")
				So(next.Username(), ShouldEqual, "alice")
				So(next.Name(), ShouldEqual, "Alice")
				So(d.Position(), ShouldBeEmpty)
			})
		})

		Convey("When the password is edited", func() {
			next := d.WithPassword("s3cret")

			Convey("Then the other fields survive", func() {
				So(next.Password(), ShouldEqual, "s3cret")
				So(next.Username(), ShouldEqual, "alice")
				So(next.Skills(), ShouldResemble, d.Skills())
			})
		})
	})
}

func TestSkillUpdates(t *testing.T) {
	Convey("Given a draft with skills [{Go, 0.8}]", t, func() {
		d := draft.New().WithSkillName(0, "Go").WithSkillLevel(0, 0.8)

		Convey("When skill 0's level is edited to 0.3", func() {
			next := d.WithSkillLevel(0, 0.3)

			Convey("Then the name is unchanged and only the level moves", func() {
				s, ok := next.Skill(0)
				So(ok, ShouldBeTrue)
				So(s.Name, ShouldEqual, "Go")
				So(s.Level, ShouldEqual, 0.3)
			})

			Convey("And the previous draft still has 0.8", func() {
				s, _ := d.Skill(0)
				So(s.Level, ShouldEqual, 0.8)
			})
		})

		Convey("When a second skill is edited by index", func() {
			next := d.AddSkill().WithSkillName(1, "SQL")

			Convey("Then the first entry is left alone", func() {
				So(next.Skills(), ShouldResemble, []model.Skill{
					{Name: "Go", Level: 0.8},
					{Name: "SQL", Level: 0.5},
				})
			})
		})

		Convey("When an out-of-range index is edited", func() {
			next := d.WithSkillName(5, "Rust").WithSkillLevel(-1, 1)

			Convey("Then nothing changes", func() {
				So(next.Skills(), ShouldResemble, d.Skills())
			})
		})

		Convey("When the caller mutates the returned slice", func() {
			skills := d.Skills()
			skills[0].Name = "mutated"

			Convey("Then the draft is not affected", func() {
				s, _ := d.Skill(0)
				So(s.Name, ShouldEqual, "Go")
			})
		})
	})
}

func TestAddRemoveSkill(t *testing.T) {
	Convey("Given a draft with two named skills", t, func() {
		d := draft.New().WithSkillName(0, "Go").AddSkill().WithSkillName(1, "SQL")

		Convey("When a skill is added", func() {
			next := d.AddSkill()

			Convey("Then a blank 0.5 entry is appended and prior order preserved", func() {
				So(next.SkillCount(), ShouldEqual, 3)
				So(next.Skills()[0].Name, ShouldEqual, "Go")
				So(next.Skills()[1].Name, ShouldEqual, "SQL")
				last, _ := next.Skill(2)
				So(last, ShouldResemble, model.Skill{Name: "", Level: 0.5})
				So(d.SkillCount(), ShouldEqual, 2)
			})
		})

		Convey("When skill 0 is removed", func() {
			next := d.RemoveSkill(0)

			Convey("Then exactly that entry is gone", func() {
				So(next.Skills(), ShouldResemble, []model.Skill{{Name: "SQL", Level: 0.5}})
				So(d.SkillCount(), ShouldEqual, 2)
			})

			Convey("And removing the last remaining skill is a no-op", func() {
				So(next.CanRemoveSkill(), ShouldBeFalse)
				So(next.RemoveSkill(0).Skills(), ShouldResemble, next.Skills())
			})
		})

		Convey("When an out-of-range index is removed", func() {
			So(d.RemoveSkill(7).SkillCount(), ShouldEqual, 2)
			So(d.RemoveSkill(-1).SkillCount(), ShouldEqual, 2)
		})
	})
}

func TestValidate(t *testing.T) {
	Convey("Given a complete draft", t, func() {
		d := draft.New().
			WithUsername("alice").
			WithPassword("pw").
			WithName("Alice").
			WithPosition("Engineer").
			WithSkillName(0, "Go").
			WithSkillLevel(0, 0.8)

		Convey("Then it validates", func() {
			So(d.Validate(), ShouldBeNil)
		})

		Convey("And the request mirrors the draft", func() {
			req := d.Request()
			So(req.Username, ShouldEqual, "alice")
			So(req.Skills, ShouldResemble, []model.Skill{{Name: "Go", Level: 0.8}})
			So(req.AvatarURL, ShouldBeEmpty)
		})

		Convey("When the username is missing", func() {
			err := d.WithUsername("").Validate()

			Convey("Then the error names the field", func() {
				So(errors.Is(err, draft.ErrInvalidDraft), ShouldBeTrue)
				So(errors.Is(err, model.ErrInvalid), ShouldBeTrue)
				var ve *model.ValidationError
				So(errors.As(err, &ve), ShouldBeTrue)
				So(ve.Field, ShouldEqual, "username")
				So(ve.Message, ShouldEqual, "Username is required")
			})
		})

		Convey("When a skill level is out of range", func() {
			err := d.AddSkill().WithSkillName(1, "SQL").WithSkillLevel(1, 1.2).Validate()

			Convey("Then the message points at that skill", func() {
				var ve *model.ValidationError
				So(errors.As(err, &ve), ShouldBeTrue)
				So(ve.Field, ShouldEqual, "skills[1].level")
				So(ve.Message, ShouldEqual, "Skill 2 level must be between 0 and 1")
			})
		})

		Convey("When a skill level is not a number", func() {
			err := d.WithSkillLevel(0, math.NaN()).Validate()

			Convey("Then it is rejected", func() {
				So(err, ShouldNotBeNil)
			})
		})

		Convey("When a skill has no name", func() {
			err := d.WithSkillName(0, "").Validate()

			Convey("Then it is rejected", func() {
				var ve *model.ValidationError
				So(errors.As(err, &ve), ShouldBeTrue)
				So(ve.Message, ShouldEqual, "Skill 1 name is required")
			})
		})
	})
}
