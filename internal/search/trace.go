package search

import (
	"fmt"
	"io"
	"strings"

	"ctchen222/tictactoe-engine/internal/game"
)

// Node is one position of a traced search. Square and Player describe the
// move that led here; the root has Square NoSquare.
type Node struct {
	Square   int
	Player   game.PlayerMark
	Score    int
	BestMove int
	Children []*Node
}

// Trace runs the same pruned search as BestMove but keeps every visited
// node, for debugging. Pruned siblings do not appear in the tree.
func Trace(b *game.Board, toMove game.PlayerMark, depth int) (root *Node, err error) {
	if !toMove.IsPlayer() {
		return nil, fmt.Errorf("trace for %q: %w", toMove, game.ErrInvalidMark)
	}
	defer recoverInvariant(&err)

	s := &searcher{board: b, prune: true}
	root = &Node{Square: game.NoSquare, Player: toMove.Opponent()}
	s.trace(root, toMove, NormalizeDepth(depth), -Infinity, Infinity)
	return root, nil
}

func (s *searcher) trace(node *Node, toMove game.PlayerMark, depth, alpha, beta int) {
	s.nodes++
	b := s.board
	node.BestMove = game.NoSquare
	if depth == 0 || b.IsTerminal() {
		node.Score = b.Score()
		return
	}

	maximizing := toMove == game.PlayerX
	node.Score = worstScore(toMove)

	for sq := range game.Squares {
		if !b.IsSquareOpen(sq) {
			continue
		}

		child := &Node{Square: sq, Player: toMove}
		node.Children = append(node.Children, child)

		s.apply(toMove, sq)
		s.trace(child, toMove.Opponent(), depth-1, alpha, beta)
		s.undo(sq)

		if improves(toMove, child.Score, node.Score) {
			node.Score, node.BestMove = child.Score, sq
		}
		if maximizing {
			alpha = max(alpha, node.Score)
		} else {
			beta = min(beta, node.Score)
		}
		if alpha >= beta {
			break
		}
	}
}

// Size counts the nodes in the tree rooted at n.
func (n *Node) Size() int {
	total := 1
	for _, c := range n.Children {
		total += c.Size()
	}
	return total
}

// Traverse prints the tree depth-first, two spaces of indent per level.
func (n *Node) Traverse(w io.Writer) error {
	return n.traverse(w, 0)
}

func (n *Node) traverse(w io.Writer, level int) error {
	var err error
	if n.Square == game.NoSquare {
		_, err = fmt.Fprintf(w, "Root Node - Score %d\n", n.Score)
	} else {
		_, err = fmt.Fprintf(w, "%sPlayer %s, Square %d, Score %d\n", strings.Repeat("  ", level), n.Player, n.Square, n.Score)
	}
	if err != nil {
		return err
	}

	for _, c := range n.Children {
		if err := c.traverse(w, level+1); err != nil {
			return err
		}
	}
	return nil
}
