package ast

// ExprVisitor is called for every expression after all of its children
// (post-order). Returning an error stops the walk and the error is returned
// from the Walk call.
//
// The visitor may replace the visited node in place (Exprs.Move + Exprs.Set);
// the walker never looks at a node again after visiting it.
type ExprVisitor func(id ExprID) error

type walker struct {
	b     *Builder
	visit ExprVisitor
}

// WalkFile visits every expression of the file in source order, children first.
func WalkFile(b *Builder, file FileID, visit ExprVisitor) error {
	f := b.Files.Get(file)
	if f == nil {
		return nil
	}
	w := walker{b: b, visit: visit}
	return w.stmts(f.Stmts)
}

// WalkStmt visits every expression under one statement.
func WalkStmt(b *Builder, id StmtID, visit ExprVisitor) error {
	w := walker{b: b, visit: visit}
	return w.stmt(id)
}

// WalkExpr visits id and its subtree.
func WalkExpr(b *Builder, id ExprID, visit ExprVisitor) error {
	w := walker{b: b, visit: visit}
	return w.expr(id)
}

func (w *walker) stmts(ids []StmtID) error {
	for _, id := range ids {
		if err := w.stmt(id); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) exprs(ids []ExprID) error {
	for _, id := range ids {
		if err := w.expr(id); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) each(ids ...ExprID) error {
	return w.exprs(ids)
}

func (w *walker) stmt(id StmtID) error {
	st := w.b.Stmts
	s := st.Get(id)
	if s == nil {
		return nil
	}
	// payload копируем по значению: визитор может расширить арены
	switch s.Kind {
	case StmtBlock:
		d, _ := st.Block(id)
		return w.stmts(d.Stmts)
	case StmtExpr:
		d, _ := st.Expr(id)
		return w.expr(d.Expr)
	case StmtVar:
		d, _ := st.Var(id)
		decls := d.Decls
		for _, decl := range decls {
			if err := w.each(decl.Target, decl.Init); err != nil {
				return err
			}
		}
	case StmtFunction, StmtClass:
		d, _ := st.Decl(id)
		return w.expr(d.Decl)
	case StmtReturn, StmtThrow:
		d, _ := st.Value(id)
		return w.expr(d.Value)
	case StmtIf:
		d := *must(st.If(id))
		if err := w.expr(d.Cond); err != nil {
			return err
		}
		if err := w.stmt(d.Then); err != nil {
			return err
		}
		return w.stmt(d.Else)
	case StmtFor:
		d := *must(st.For(id))
		if err := w.stmt(d.Init); err != nil {
			return err
		}
		if err := w.each(d.Test, d.Update); err != nil {
			return err
		}
		return w.stmt(d.Body)
	case StmtForIn:
		d := *must(st.ForIn(id))
		if err := w.stmt(d.Left); err != nil {
			return err
		}
		if err := w.expr(d.Right); err != nil {
			return err
		}
		return w.stmt(d.Body)
	case StmtWhile:
		d := *must(st.Loop(id))
		if err := w.expr(d.Cond); err != nil {
			return err
		}
		return w.stmt(d.Body)
	case StmtDoWhile:
		d := *must(st.Loop(id))
		if err := w.stmt(d.Body); err != nil {
			return err
		}
		return w.expr(d.Cond)
	case StmtSwitch:
		d := *must(st.Switch(id))
		if err := w.expr(d.Disc); err != nil {
			return err
		}
		for _, c := range d.Cases {
			if err := w.expr(c.Test); err != nil {
				return err
			}
			if err := w.stmts(c.Body); err != nil {
				return err
			}
		}
	case StmtTry:
		d := *must(st.Try(id))
		if err := w.stmt(d.Block); err != nil {
			return err
		}
		if err := w.expr(d.Param); err != nil {
			return err
		}
		if err := w.stmt(d.Handler); err != nil {
			return err
		}
		return w.stmt(d.Finalizer)
	case StmtLabeled:
		d, _ := st.Labeled(id)
		return w.stmt(d.Body)
	case StmtExport:
		d := *must(st.Export(id))
		if err := w.stmt(d.Decl); err != nil {
			return err
		}
		return w.expr(d.Default)
	case StmtEmpty, StmtDebugger, StmtImport, StmtBreak, StmtContinue:
	}
	return nil
}

func (w *walker) expr(id ExprID) error {
	ex := w.b.Exprs
	e := ex.Get(id)
	if e == nil {
		return nil
	}
	if err := w.children(id, e.Kind); err != nil {
		return err
	}
	return w.visit(id)
}

func (w *walker) children(id ExprID, kind ExprKind) error {
	ex := w.b.Exprs
	switch kind {
	case ExprTemplate:
		d := *must(ex.Template(id))
		if err := w.expr(d.Tag); err != nil {
			return err
		}
		return w.exprs(d.Exprs)
	case ExprArray:
		d, _ := ex.Array(id)
		return w.exprs(d.Elems)
	case ExprObject:
		d, _ := ex.Object(id)
		props := d.Props
		for _, p := range props {
			if err := w.expr(p.Key); err != nil {
				return err
			}
			if p.Value != p.Key {
				if err := w.expr(p.Value); err != nil {
					return err
				}
			}
		}
	case ExprFunction:
		d := *must(ex.Function(id))
		if err := w.expr(d.Name); err != nil {
			return err
		}
		if err := w.exprs(d.Params); err != nil {
			return err
		}
		if err := w.stmt(d.Body); err != nil {
			return err
		}
		return w.expr(d.ExprBody)
	case ExprClass:
		d := *must(ex.Class(id))
		if err := w.each(d.Name, d.Super); err != nil {
			return err
		}
		for _, m := range d.Members {
			if err := w.each(m.Key, m.Value); err != nil {
				return err
			}
			if err := w.stmt(m.Body); err != nil {
				return err
			}
		}
	case ExprUnary:
		d, _ := ex.Unary(id)
		return w.expr(d.Operand)
	case ExprBinary:
		d := *must(ex.Binary(id))
		return w.each(d.Left, d.Right)
	case ExprAssign:
		d := *must(ex.Assign(id))
		return w.each(d.Target, d.Value)
	case ExprConditional:
		d := *must(ex.Conditional(id))
		return w.each(d.Cond, d.Then, d.Else)
	case ExprCall:
		d := *must(ex.Call(id))
		if err := w.expr(d.Callee); err != nil {
			return err
		}
		return w.exprs(d.Args)
	case ExprNew:
		d := *must(ex.New(id))
		if err := w.expr(d.Callee); err != nil {
			return err
		}
		return w.exprs(d.Args)
	case ExprMember:
		d := *must(ex.Member(id))
		return w.each(d.Object, d.Property)
	case ExprGroup:
		d, _ := ex.Group(id)
		return w.expr(d.Inner)
	case ExprSequence:
		d, _ := ex.Sequence(id)
		return w.exprs(d.Exprs)
	case ExprSpread:
		d, _ := ex.Spread(id)
		return w.expr(d.Value)
	case ExprAwait:
		d, _ := ex.Await(id)
		return w.expr(d.Value)
	case ExprYield:
		d, _ := ex.Yield(id)
		return w.expr(d.Value)
	case ExprInvalid, ExprIdent, ExprPrivateName, ExprLit, ExprThis, ExprSuper, ExprImport, ExprMeta:
	}
	return nil
}

func must[T any](v *T, ok bool) *T {
	if !ok {
		panic("ast: payload kind mismatch")
	}
	return v
}
