// Package carpenter is an interactive cupboard configurator for [Ebitengine].
//
// Carpenter turns raw pointer, touch and keyboard input into reactions on 3D
// objects and keeps a cupboard's partitions consistent while the user drags
// dividers and walls. Every part of the cupboard is a [Node] with a
// position, rotation and size. [Scene.Draw] renders the tree as a
// wireframe, and callers wanting more can walk the nodes themselves.
//
// # Quick start
//
//	cfg := carpenter.DefaultConfig()
//	cam := carpenter.NewCamera(carpenter.Rect{Width: 1280, Height: 720},
//		mgl64.Vec3{0, 400, 4000}, mgl64.Vec3{})
//	scene := carpenter.NewScene(cam)
//
//	cupboard, err := carpenter.NewCupboard(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	cupboard.Attach(scene)
//	carpenter.AttachKeyboard(scene, cupboard.Root())
//
// Call [Scene.Update] once per Ebitengine frame. It polls input, dispatches
// reactions and advances door animations.
//
// # Reactions
//
// A [Reaction] is bound to an [EventKind] and a target [Object] with
// [Scene.On] or [Scene.OnFunc]. A nil target binds the reaction to the
// reference plane: it fires once for every event of its kind, after all hit
// targets, whatever the pointer is over.
//
// Pointer events cast a ray from the [Camera] through the pointer position.
// Every bound target the ray hits is dispatched to, nearest first. Each
// reaction returns a [Propagation]:
//
//   - [Continue] runs the next reaction and then the next target.
//   - [SkipTarget] ends the current target and moves on.
//   - [StopAll] ends the event for every remaining target.
//
// Plane-level reactions run regardless. Moving the pointer from one nearest
// object to another fires [EventPointerLeave] on the old one and
// [EventPointerEnter] on the new one.
//
// # Sections
//
// A [Sections] value partitions one axis into [Section] values whose relative
// sizes sum to one. Dragging a divider changes its section and the next
// sibling by opposite amounts, clamped so both keep thickness plus minimum
// size. Changing the amount discards and rebuilds every section.
//
// # Testing
//
// [Scene.InjectPress], [Scene.InjectDrag] and friends queue synthetic input
// consumed one event per frame. [LoadTestScript] reads a JSON script of such
// steps, and [Scene.Tick] advances animations without real time passing.
//
// # ECS integration
//
// [Scene.SetEventSink] forwards a summary of every dispatch. The ecs
// sub-module provides a sink for [donburi].
//
// [Ebitengine]: https://ebitengine.org
// [donburi]: https://github.com/yohamta/donburi
package carpenter
