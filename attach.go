package carpenter

// Attach adds the cupboard to scene and registers its reactions. Sections
// rebuilt later by SetBayAmount, SetShelfAmount or SetDoorAmount are bound
// automatically. The cupboard is also scheduled as a stepper so doors
// animate on Scene.Tick.
func (c *Cupboard) Attach(scene *Scene) {
	if c.scene != nil {
		c.Detach()
	}
	c.scene = scene
	scene.Root().AddChild(c.root)
	scene.AddStepper(c)

	c.bindings = append(c.bindings,
		scene.OnFunc(EventPointerMove, nil, c.onPlaneMove),
		scene.OnFunc(EventPointerUp, nil, c.onRelease),
		scene.OnFunc(EventPointerUpGlobal, nil, c.onRelease),
	)
	for side := WallLeft; side < numWallSides; side++ {
		panel := c.walls.Panel(side)
		c.bindings = append(c.bindings,
			scene.OnFunc(EventPointerDown, panel, func(r *Reason) Propagation {
				if !c.GrabWall(side) && c.scene.debug {
					c.scene.debugf("wall %s grab rejected", side)
				}
				return StopAll
			}),
			scene.OnFunc(EventPointerEnter, panel, highlight(panel, true)),
			scene.OnFunc(EventPointerLeave, panel, highlight(panel, false)),
		)
	}
	c.bays.setBinder(c)
	c.doors.setBinder(c)
}

// Detach removes every reaction, stops the door stepper and takes the
// cupboard out of the scene.
func (c *Cupboard) Detach() {
	if c.scene == nil {
		return
	}
	c.Release()
	c.bays.setBinder(nil)
	c.doors.setBinder(nil)
	for _, b := range c.bindings {
		b.Remove()
	}
	c.bindings = nil
	for side := WallLeft; side < numWallSides; side++ {
		c.scene.Resolver().Forget(c.walls.Panel(side))
	}
	c.scene.RemoveStepper(c)
	c.root.RemoveFromParent()
	c.scene = nil
}

// onPlaneMove drives the current drag from the pointer's projection onto
// the reference plane.
func (c *Cupboard) onPlaneMove(r *Reason) Propagation {
	if !c.Dragging() || !r.PlaneHit {
		return Continue
	}
	res := c.DragTo(c.root.WorldToLocal(r.PlanePoint))
	if res != DragApplied && c.scene.debug {
		c.scene.debugf("drag %s", res)
	}
	return Continue
}

// onRelease ends any drag. It is bound on the plane so it runs for every
// release, whatever the pointer is over.
func (c *Cupboard) onRelease(*Reason) Propagation {
	c.Release()
	return Continue
}

// bindSection registers the divider grab and the door toggle of s.
func (c *Cupboard) bindSection(s *Section) {
	scene := c.scene
	if s.divider != nil {
		div := s.divider
		s.bindings = append(s.bindings,
			scene.OnFunc(EventPointerDown, div, func(r *Reason) Propagation {
				if res := c.Grab(s); res != GrabAccepted && scene.debug {
					scene.debugf("%s grab %s", div.Name, res)
				}
				return StopAll
			}),
			scene.OnFunc(EventPointerEnter, div, highlight(div, true)),
			scene.OnFunc(EventPointerLeave, div, highlight(div, false)),
		)
	}
	if d := s.door; d != nil {
		panel := d.panel
		s.bindings = append(s.bindings,
			// Doors in front take the press so nothing behind them is grabbed.
			scene.OnFunc(EventPointerDown, panel, func(*Reason) Propagation {
				return StopAll
			}),
			scene.OnFunc(EventPointerUp, panel, func(*Reason) Propagation {
				if c.Dragging() {
					return Continue
				}
				if d.Toggle() == ToggleIgnored && scene.debug {
					scene.debugf("%s toggle ignored while %s", d.name, d.state)
				}
				return StopAll
			}),
			scene.OnFunc(EventPointerEnter, panel, highlight(panel, true)),
			scene.OnFunc(EventPointerLeave, panel, highlight(panel, false)),
		)
	}
}

// unbindSection drops every reaction registered by bindSection.
func (c *Cupboard) unbindSection(s *Section) {
	for _, b := range s.bindings {
		b.Remove()
	}
	s.bindings = nil
	if c.scene == nil {
		return
	}
	if s.divider != nil {
		c.scene.Resolver().Forget(s.divider)
	}
	if s.door != nil {
		c.scene.Resolver().Forget(s.door.panel)
	}
}

func highlight(n *Node, on bool) func(*Reason) Propagation {
	return func(*Reason) Propagation {
		n.Highlighted = on
		return Continue
	}
}
