package scene

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-pano/common"
	"github.com/Carmen-Shannon/oxy-pano/engine/entity"
	"github.com/Carmen-Shannon/oxy-pano/engine/game_object"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"
)

func TestAddAssignsIDs(t *testing.T) {
	s := NewScene("pano")
	a := game_object.NewGameObject()
	b := game_object.NewGameObject(game_object.WithID(42))

	require.Equal(t, uint64(1), s.Add(a))
	require.Equal(t, uint64(42), s.Add(b))
	require.Equal(t, 2, s.Count())
	require.Same(t, a, s.Get(1))

	s.Remove(1)
	s.Remove(1)
	require.Nil(t, s.Get(1))
	require.Equal(t, 1, s.Count())

	s.Clear()
	require.Zero(t, s.Count())
}

func TestDrawListOrder(t *testing.T) {
	back := game_object.NewGameObject(game_object.WithName("back"), game_object.WithRenderOrder(1))
	front := game_object.NewGameObject(game_object.WithName("front"), game_object.WithRenderOrder(0))
	hidden := game_object.NewGameObject(game_object.WithName("hidden"), game_object.WithEnabled(false))
	s := NewScene("pano", WithObjects(back, front, hidden))

	list := s.DrawList()
	require.Len(t, list, 2)
	require.Equal(t, "front", list[0].Name())
	require.Equal(t, "back", list[1].Name())

	back.SetRenderOrder(-1)
	list = s.DrawList()
	require.Equal(t, "back", list[0].Name())
}

func TestReferenceFrame(t *testing.T) {
	s := NewScene("pano", WithActive(false))
	require.False(t, s.Active())
	require.Nil(t, s.ReferenceFrame())
	require.Equal(t, common.IdentityPose(), s.FramePose())

	anchor := entity.NewEntity(entity.WithPosition(mgl64.Vec3{1, 2, 3}))
	s.SetReferenceFrame(anchor)
	require.Equal(t, mgl64.Vec3{1, 2, 3}, s.FramePose().Position)

	s.SetActive(true)
	require.True(t, s.Active())
}
