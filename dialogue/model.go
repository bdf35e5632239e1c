package dialogue

import "encoding/json"

// Data is the on-disk shape of dialogues.json.
type Data struct {
	Dialogues map[string]*Graph `json:"Dialogues"`
}

type Graph struct {
	ID    string `json:"Id"`
	Start string `json:"Start"`
	Nodes []Node `json:"Nodes"`
}

type Node struct {
	ID         string      `json:"Id"`
	Speaker    string      `json:"Speaker"`
	Text       string      `json:"Text"`
	Next       string      `json:"Next"`
	Choices    []Choice    `json:"Choices"`
	Conditions []Condition `json:"Conditions"`
	Actions    []Action    `json:"Actions"`
}

func (n *Node) HasChoices() bool {
	return n != nil && len(n.Choices) > 0
}

type Choice struct {
	Text       string      `json:"Text"`
	Next       string      `json:"Next"`
	Conditions []Condition `json:"Conditions"`
	Actions    []Action    `json:"Actions"`
}

// Condition passes when flag Flag equals Equals. When Expr is set it must
// also evaluate to true; see Context.Eval.
type Condition struct {
	Flag   string `json:"Flag"`
	Equals bool   `json:"Equals"`
	Expr   string `json:"Expr"`
}

// UnmarshalJSON defaults Equals to true so {"Flag": "met"} reads as "met is
// set".
func (c *Condition) UnmarshalJSON(data []byte) error {
	type raw Condition
	r := raw{Equals: true}
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*c = Condition(r)
	return nil
}

// Action sets a flag, or a context variable when SetVar is given.
type Action struct {
	SetFlag string `json:"SetFlag"`
	Value   bool   `json:"Value"`
	SetVar  string `json:"SetVar"`
	To      string `json:"To"`
}

// Node returns the node with id.
func (g *Graph) Node(id string) (*Node, bool) {
	if g == nil || id == "" {
		return nil, false
	}
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i], true
		}
	}
	return nil, false
}

// StartNode returns the node named by Start, falling back to the first node.
func (g *Graph) StartNode() (*Node, bool) {
	if g == nil || len(g.Nodes) == 0 {
		return nil, false
	}
	start := g.Start
	if start == "" {
		start = "start"
	}
	if n, ok := g.Node(start); ok {
		return n, true
	}
	return &g.Nodes[0], true
}
