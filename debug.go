package carpenter

import (
	"fmt"
	"os"
)

// debugf prints one tagged line to stderr. Callers check s.debug first.
func (s *Scene) debugf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[carpenter] "+format+"\n", args...)
}

// debugDispatch logs the outcome of one dispatch pass.
func (s *Scene) debugDispatch(r *Reason, nearest Object, res DispatchResult) {
	if !s.debug {
		return
	}
	if !r.Kind.IsPointer() {
		s.debugf("%s key=%v", r.Kind, r.Key)
		return
	}
	s.debugf("%s at (%.0f,%.0f) plane=%v nearest=%s | visited: %d | skipped: %d | stopped: %v",
		r.Kind, r.Screen.X, r.Screen.Y, r.PlaneHit, objectName(nearest),
		res.Visited, res.Skipped, res.Stopped)
}

// objectName returns a readable label for log lines.
func objectName(o Object) string {
	switch v := o.(type) {
	case nil:
		return "-"
	case *Node:
		return fmt.Sprintf("%q", v.Name)
	case *Plane:
		return "plane"
	default:
		return fmt.Sprintf("%T", o)
	}
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("carpenter debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}
