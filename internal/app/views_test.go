package service

import (
	"context"
	"testing"

	"github.com/okian/memedash/internal/domain/model"
	"github.com/okian/memedash/internal/domain/state"
	. "github.com/smartystreets/goconvey/convey"
)

type listSource struct {
	scores []model.ScoredEntity
}

func (l *listSource) FetchAll(context.Context) ([]model.ScoredEntity, error) {
	return l.scores, nil
}

func (l *listSource) Lookup(context.Context, string) (model.ScoredEntity, error) {
	return model.ScoredEntity{}, nil
}

func TestViewsMemo(t *testing.T) {
	Convey("Given views memoized for version 2", t, func() {
		src := &listSource{scores: []model.ScoredEntity{{ScreenName: model.Str("A"), OverallScore: model.Float(9)}}}
		svc := New(src, WithRefreshOnStart(false))
		So(svc.Refresh(context.Background()), ShouldBeNil)
		So(svc.Refresh(context.Background()), ShouldBeNil)
		current := svc.views(svc.store.Snapshot())
		So(current.version, ShouldEqual, 2)

		Convey("When a request still holds an older snapshot", func() {
			stale := svc.views(state.Snapshot{Version: 1})

			Convey("Then it gets views of its own snapshot", func() {
				So(stale.version, ShouldEqual, 1)
				So(stale.view.Summary.Total, ShouldEqual, 0)
			})

			Convey("And the newer memo should be kept", func() {
				So(svc.memo.version, ShouldEqual, 2)
				So(svc.memo.view.Summary.Total, ShouldEqual, 1)
			})
		})

		Convey("When the same version is asked again", func() {
			again := svc.views(svc.store.Snapshot())

			So(again.version, ShouldEqual, 2)
			So(again.view.Summary.Total, ShouldEqual, 1)
		})
	})
}
