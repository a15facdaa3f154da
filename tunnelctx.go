package logicsim

import "sort"

// tunnelNet tracks which components send and receive under one label.
type tunnelNet struct {
	senders   map[int64]struct{}
	receivers map[int64]struct{}
}

func (n *tunnelNet) set(role TunnelRole) map[int64]struct{} {
	if role == TunnelSender {
		return n.senders
	}
	return n.receivers
}

func (n *tunnelNet) empty() bool {
	return len(n.senders) == 0 && len(n.receivers) == 0
}

// A TunnelContext tracks named virtual net membership across the whole
// circuit. A label's net is valid iff exactly one sender exists for it;
// receivers under an invalid label read undriven. Membership changes
// arrive as explicit TunnelUpdate events from component lifecycle and
// property edits, never by scanning the graph.
type TunnelContext struct {
	nets map[string]*tunnelNet
}

// NewTunnelContext returns an empty context.
func NewTunnelContext() *TunnelContext {
	return &TunnelContext{nets: make(map[string]*tunnelNet)}
}

func (tc *TunnelContext) net(label string) *tunnelNet {
	n, ok := tc.nets[label]
	if !ok {
		n = &tunnelNet{
			senders:   make(map[int64]struct{}),
			receivers: make(map[int64]struct{}),
		}
		tc.nets[label] = n
	}
	return n
}

func (tc *TunnelContext) prune(label string) {
	if n, ok := tc.nets[label]; ok && n.empty() {
		delete(tc.nets, label)
	}
}

// Apply applies one membership change for the component with the given
// graph id.
func (tc *TunnelContext) Apply(id int64, u TunnelUpdate) {
	switch u.Op {
	case TunnelAdd:
		tc.net(u.Label).set(u.Role)[id] = struct{}{}
	case TunnelRemove:
		if n, ok := tc.nets[u.Label]; ok {
			delete(n.set(u.Role), id)
			tc.prune(u.Label)
		}
	case TunnelRename:
		if n, ok := tc.nets[u.Label]; ok {
			delete(n.set(u.Role), id)
			tc.prune(u.Label)
		}
		tc.net(u.NewLabel).set(u.Role)[id] = struct{}{}
	case TunnelFlip:
		n := tc.net(u.Label)
		delete(n.set(u.Role), id)
		switch u.Role {
		case TunnelSender:
			n.receivers[id] = struct{}{}
		case TunnelReceiver:
			n.senders[id] = struct{}{}
		}
	}
}

// Labels returns all live labels in sorted order.
func (tc *TunnelContext) Labels() []string {
	out := make([]string, 0, len(tc.nets))
	for l := range tc.nets {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// Net returns the sender and receiver component ids registered under
// label, each in sorted order.
func (tc *TunnelContext) Net(label string) (senders, receivers []int64) {
	n, ok := tc.nets[label]
	if !ok {
		return nil, nil
	}
	return sortedIDs(n.senders), sortedIDs(n.receivers)
}

// UniqueSender returns the single sender for label. ok is false when
// the net is invalid (zero or several senders).
func (tc *TunnelContext) UniqueSender(label string) (id int64, ok bool) {
	n, found := tc.nets[label]
	if !found || len(n.senders) != 1 {
		return 0, false
	}
	for s := range n.senders {
		return s, true
	}
	return 0, false
}

func sortedIDs(m map[int64]struct{}) []int64 {
	out := make([]int64, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
