package numeric_test

import (
	"testing"

	"github.com/okian/judgeboard/internal/domain/numeric"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRound2(t *testing.T) {
	Convey("Given values on the half-cent boundary", t, func() {
		Convey("Then they should round up", func() {
			So(numeric.Round2(1.005), ShouldEqual, 1.01)
			So(numeric.Round2(2.675), ShouldEqual, 2.68)
			So(numeric.Round2(78.125), ShouldEqual, 78.13)
		})
	})

	Convey("Given values below the boundary", t, func() {
		So(numeric.Round2(78.124), ShouldEqual, 78.12)
		So(numeric.Round2(80), ShouldEqual, 80.0)
	})
}

func TestMean(t *testing.T) {
	Convey("Given a complete panel of three judges", t, func() {
		mean, ok := numeric.Mean([]int{77, 78, 79})

		Convey("Then the mean should be exact", func() {
			So(ok, ShouldBeTrue)
			So(mean, ShouldEqual, 78.0)
		})
	})

	Convey("Given values with a repeating mean", t, func() {
		mean, ok := numeric.Mean([]int{1, 2, 2})
		So(ok, ShouldBeTrue)
		So(mean, ShouldEqual, 1.67)

		mean, _ = numeric.Mean([]int{70, 70, 71})
		So(mean, ShouldEqual, 70.33)
	})

	Convey("Given two values", t, func() {
		mean, _ := numeric.Mean([]int{80, 81})
		So(mean, ShouldEqual, 80.5)
	})

	Convey("Given no values", t, func() {
		_, ok := numeric.Mean(nil)
		So(ok, ShouldBeFalse)
	})
}

func TestSum(t *testing.T) {
	Convey("Given category averages", t, func() {
		So(numeric.Sum([]float64{80, 60}), ShouldEqual, 140.0)
		So(numeric.Sum([]float64{80.33, 60.67}), ShouldEqual, 141.0)
		So(numeric.Sum([]float64{0.1, 0.2}), ShouldEqual, 0.3)
		So(numeric.Sum(nil), ShouldEqual, 0.0)
	})
}

func TestCompare(t *testing.T) {
	Convey("Given scores compared at two decimals", t, func() {
		So(numeric.Equal(0.1+0.2, 0.3), ShouldBeTrue)
		So(numeric.Equal(80.33, 80.34), ShouldBeFalse)
		So(numeric.Compare(90, 80), ShouldEqual, 1)
		So(numeric.Compare(80, 90), ShouldEqual, -1)
		So(numeric.Compare(80, 80), ShouldEqual, 0)
	})
}
