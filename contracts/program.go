package contracts

// Program is a flat postfix (RPN) sequence of nodes, executed
// left-to-right against a Stack (C4).
type Program []Node

// Save renders the program as `[node, node, ...]`, matching the
// persisted textual form (§4.10).
func (p Program) Save() string {
	out := "["
	for i, node := range p {
		if i > 0 {
			out += ", "
		}
		out += node.Save()
	}
	return out + "]"
}
