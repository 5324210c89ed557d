package ast

import (
	"errors"
	"testing"

	"errcode/internal/source"
)

func sp(start, end uint32) source.Span { return source.Span{Start: start, End: end} }

// throw new Error(a + "b")
func buildThrow(b *Builder) (FileID, ExprID, []ExprID) {
	ex := b.Exprs
	errIdent := ex.NewIdent(sp(10, 15), b.Strings.Intern("Error"))
	a := ex.NewIdent(sp(16, 17), b.Strings.Intern("a"))
	lit := ex.NewLiteral(sp(20, 23), ExprLitString, b.Strings.Intern("b"))
	bin := ex.NewBinary(sp(16, 23), ExprBinaryAdd, a, lit)
	newErr := ex.NewNew(sp(6, 24), errIdent, []ExprID{bin}, true)
	f := b.NewFile(sp(0, 25))
	b.PushStmt(f, b.Stmts.NewThrow(sp(0, 25), newErr))
	return f, newErr, []ExprID{errIdent, a, lit, bin, newErr}
}

func TestWalkFilePostOrder(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	f, _, want := buildThrow(b)

	var got []ExprID
	err := WalkFile(b, f, func(id ExprID) error {
		got = append(got, id)
		return nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("visited %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order %v, want %v", got, want)
		}
	}
}

func TestWalkStopsOnError(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	f, _, _ := buildThrow(b)
	boom := errors.New("boom")
	n := 0
	err := WalkFile(b, f, func(ExprID) error {
		n++
		if n == 2 {
			return boom
		}
		return nil
	})
	if !errors.Is(err, boom) || n != 2 {
		t.Fatalf("err=%v visits=%d", err, n)
	}
}

func TestMoveSetReplacesInPlace(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	f, newErr, _ := buildThrow(b)
	ex := b.Exprs

	moved := ex.Move(newErr)
	if d, ok := ex.New(moved); !ok || len(d.Args) != 1 {
		t.Fatal("moved node lost its payload")
	}
	wrapper := ex.NewGroup(sp(6, 24), moved)
	ex.Set(newErr, *ex.Get(wrapper))
	ex.MarkSynthetic(newErr)

	// throw statement still points at newErr, which is now the group
	th, _ := b.Stmts.Value(b.Files.Get(f).Stmts[0])
	if th.Value != newErr {
		t.Fatal("parent id changed")
	}
	g, ok := ex.Group(newErr)
	if !ok || g.Inner != moved {
		t.Fatalf("slot was not replaced: %v", ex.Get(newErr).Kind)
	}
	if !ex.Get(newErr).Synthetic() || ex.Get(moved).Synthetic() {
		t.Fatal("synthetic flag misplaced")
	}
}

func TestAccessorKindMismatch(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	id := b.Exprs.NewThis(sp(0, 4))
	if _, ok := b.Exprs.Call(id); ok {
		t.Fatal("Call accessor accepted a this expression")
	}
	if _, ok := b.Exprs.Ident(NoExprID); ok {
		t.Fatal("Ident accessor accepted NoExprID")
	}
	if b.Exprs.Get(ExprID(999)) != nil {
		t.Fatal("Get of unknown id must be nil")
	}
}

func TestShorthandPropVisitedOnce(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	key := b.Exprs.NewIdent(sp(1, 2), b.Strings.Intern("x"))
	obj := b.Exprs.NewObject(sp(0, 3), []ObjectProp{{Kind: PropShorthand, Key: key, Value: key}})
	n := 0
	_ = WalkExpr(b, obj, func(ExprID) error { n++; return nil })
	if n != 2 {
		t.Fatalf("visits = %d, want 2", n)
	}
}
