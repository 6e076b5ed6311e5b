// Package tree builds the betting tree a strategy is defined over and
// exposes the node API the tree walker traverses.
package tree

// Node is one state of the betting. Terminal nodes carry a terminal id and
// the matched bet level; nonterminal nodes carry the acting seat, their
// successors, and the action names used to build action sequences.
type Node struct {
	terminal      bool
	street        int
	playerActing  int
	lastBetTo     int
	nonterminalID int
	terminalID    int
	succs         []*Node
	actionNames   []string
	callSucc      int
	foldSucc      int
}

// Terminal reports whether play ends at this node.
func (n *Node) Terminal() bool { return n.terminal }

// Street returns the street this node belongs to.
func (n *Node) Street() int { return n.street }

// PlayerActing returns the seat to act, or -1 on terminals.
func (n *Node) PlayerActing() int { return n.playerActing }

// NumSuccs returns the number of successors.
func (n *Node) NumSuccs() int { return len(n.succs) }

// LastBetTo returns the street-spanning high water mark of any seat's
// contribution at this node.
func (n *Node) LastBetTo() int { return n.lastBetTo }

// NonterminalID returns the node's id among nonterminals of the same
// (street, player acting), or -1 on terminals.
func (n *Node) NonterminalID() int { return n.nonterminalID }

// TerminalID returns the node's id among terminals, or -1 on nonterminals.
func (n *Node) TerminalID() int { return n.terminalID }

// CallSuccIndex returns the index of the check/call successor, or -1.
func (n *Node) CallSuccIndex() int { return n.callSucc }

// FoldSuccIndex returns the index of the fold successor, or -1.
func (n *Node) FoldSuccIndex() int { return n.foldSucc }

// DefaultSuccIndex returns the successor that receives all probability mass
// when every stored regret is nonpositive.
func (n *Node) DefaultSuccIndex() int {
	if n.callSucc >= 0 {
		return n.callSucc
	}
	return 0
}

// IthSucc returns the child along action i.
func (n *Node) IthSucc(i int) *Node { return n.succs[i] }

// ActionName returns the printable token for action i.
func (n *Node) ActionName(i int) string { return n.actionNames[i] }
