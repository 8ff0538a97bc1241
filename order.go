package input

// Request looks name up across the query, body and cookie namespaces in the
// configured precedence and returns the first value that is not empty-like.
//
// The precedence is the request order, or the variables order when the
// request order is empty. Each character selects a namespace: 'G' query,
// 'P' body, 'C' cookies; matching is case-insensitive and other characters
// are ignored. A present but empty-like value such as "0" does not stop the
// search. Request returns nil when nothing matches.
func (m *Manager) Request(name string) any {
	order := m.requestOrder
	if order == "" {
		order = m.variablesOrder
	}

	for i := 0; i < len(order); i++ {
		var v any
		switch order[i] {
		case 'G', 'g':
			v = m.Get(name)
		case 'P', 'p':
			v = m.Post(name)
		case 'C', 'c':
			v = m.Cookie(name)
		default:
			continue
		}
		if !IsEmptyLike(v) {
			return v
		}
	}
	return nil
}
