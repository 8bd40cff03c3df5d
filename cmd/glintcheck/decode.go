package main

import (
	"encoding/json"
	"fmt"

	"glint/internal/ast"
)

// The JSON wire format mirrors internal/ast's node variants: every
// top-level item, statement, var, expression, field, and type node is an
// object carrying a "kind" discriminator plus that variant's fields.
// Declarations and field declarations have a single shape and carry no
// "kind".
// This package is the only place that knows about the wire format —
// internal/ast stays free of encoding concerns.

type wirePos struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

func (p wirePos) toAST() ast.Position {
	return ast.Position{File: p.File, Line: p.Line, Column: p.Column}
}

type wireProgram struct {
	ModName   string        `json:"mod_name"`
	TopLevels []json.RawMessage `json:"top_levels"`
}

func decodeProgram(data []byte) (*ast.Program, error) {
	var wp wireProgram
	if err := json.Unmarshal(data, &wp); err != nil {
		return nil, fmt.Errorf("decoding program: %w", err)
	}
	prog := &ast.Program{ModName: wp.ModName}
	for i, raw := range wp.TopLevels {
		tl, err := decodeTopLevel(raw)
		if err != nil {
			return nil, fmt.Errorf("decoding top-level item %d: %w", i, err)
		}
		prog.TopLevels = append(prog.TopLevels, tl)
	}
	return prog, nil
}

type kinded struct {
	Kind string `json:"kind"`
}

func decodeTopLevel(raw json.RawMessage) (ast.TopLevel, error) {
	var k kinded
	if err := json.Unmarshal(raw, &k); err != nil {
		return nil, err
	}
	switch k.Kind {
	case "var":
		var w struct {
			Pos   wirePos           `json:"pos"`
			Decls []json.RawMessage `json:"decls"`
			Exps  []json.RawMessage `json:"exps"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		decls, err := decodeDecls(w.Decls)
		if err != nil {
			return nil, err
		}
		exps, err := decodeExps(w.Exps)
		if err != nil {
			return nil, err
		}
		return &ast.TLVar{Position: w.Pos.toAST(), Decls: decls, Exps: exps}, nil
	case "func":
		return decodeTLFunc(raw)
	case "typealias":
		var w struct {
			Pos      wirePos         `json:"pos"`
			Name     string          `json:"name"`
			TypeNode json.RawMessage `json:"type"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		tn, err := decodeTypeNode(w.TypeNode)
		if err != nil {
			return nil, err
		}
		return &ast.TLTypeAlias{Position: w.Pos.toAST(), Name: w.Name, TypeNode: tn}, nil
	case "record":
		var w struct {
			Pos    wirePos           `json:"pos"`
			Name   string            `json:"name"`
			Fields []json.RawMessage `json:"fields"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		fields, err := decodeFieldDecls(w.Fields)
		if err != nil {
			return nil, err
		}
		return &ast.TLRecord{Position: w.Pos.toAST(), Name: w.Name, Fields: fields}, nil
	case "stat":
		var w struct {
			Pos  wirePos         `json:"pos"`
			Stat json.RawMessage `json:"stat"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		st, err := decodeStat(w.Stat)
		if err != nil {
			return nil, err
		}
		return &ast.TLStat{Position: w.Pos.toAST(), Stat: st}, nil
	}
	return nil, fmt.Errorf("unknown top-level kind %q", k.Kind)
}

func decodeTLFunc(raw json.RawMessage) (ast.TopLevel, error) {
	var w struct {
		Pos      wirePos           `json:"pos"`
		Decl     json.RawMessage   `json:"decl"`
		Params   []json.RawMessage `json:"params"`
		RetTypes []json.RawMessage `json:"ret_types"`
		Body     json.RawMessage   `json:"body"`
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	decl, err := decodeDecl(w.Decl)
	if err != nil {
		return nil, err
	}
	params, err := decodeDecls(w.Params)
	if err != nil {
		return nil, err
	}
	rets, err := decodeTypeNodes(w.RetTypes)
	if err != nil {
		return nil, err
	}
	body, err := decodeBlock(w.Body)
	if err != nil {
		return nil, err
	}
	return &ast.TLFunc{Position: w.Pos.toAST(), Decl: decl, Params: params, RetTypes: rets, Body: body}, nil
}

func decodeDecl(raw json.RawMessage) (*ast.Decl, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var w struct {
		Pos      wirePos         `json:"pos"`
		Name     string          `json:"name"`
		Owner    string          `json:"owner"`
		TypeNode json.RawMessage `json:"type"`
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	d := &ast.Decl{Position: w.Pos.toAST(), Name: w.Name, Owner: w.Owner}
	if len(w.TypeNode) > 0 && string(w.TypeNode) != "null" {
		tn, err := decodeTypeNode(w.TypeNode)
		if err != nil {
			return nil, err
		}
		d.TypeNode = tn
	}
	return d, nil
}

func decodeDecls(raws []json.RawMessage) ([]*ast.Decl, error) {
	out := make([]*ast.Decl, 0, len(raws))
	for _, r := range raws {
		d, err := decodeDecl(r)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func decodeFieldDecl(raw json.RawMessage) (*ast.FieldDecl, error) {
	var w struct {
		Pos      wirePos         `json:"pos"`
		Name     string          `json:"name"`
		TypeNode json.RawMessage `json:"type"`
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	tn, err := decodeTypeNode(w.TypeNode)
	if err != nil {
		return nil, err
	}
	return &ast.FieldDecl{Position: w.Pos.toAST(), Name: w.Name, TypeNode: tn}, nil
}

func decodeFieldDecls(raws []json.RawMessage) ([]*ast.FieldDecl, error) {
	out := make([]*ast.FieldDecl, 0, len(raws))
	for _, r := range raws {
		f, err := decodeFieldDecl(r)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func decodeTypeNode(raw json.RawMessage) (ast.TypeNode, error) {
	var k kinded
	if err := json.Unmarshal(raw, &k); err != nil {
		return nil, err
	}
	switch k.Kind {
	case "nil":
		var w struct{ Pos wirePos `json:"pos"` }
		json.Unmarshal(raw, &w)
		return &ast.NilTypeNode{Position: w.Pos.toAST()}, nil
	case "module":
		var w struct{ Pos wirePos `json:"pos"` }
		json.Unmarshal(raw, &w)
		return &ast.ModuleTypeNode{Position: w.Pos.toAST()}, nil
	case "name":
		var w struct {
			Pos  wirePos `json:"pos"`
			Name string  `json:"name"`
		}
		json.Unmarshal(raw, &w)
		return &ast.NameTypeNode{Position: w.Pos.toAST(), Name: w.Name}, nil
	case "array":
		var w struct {
			Pos  wirePos         `json:"pos"`
			Elem json.RawMessage `json:"elem"`
		}
		json.Unmarshal(raw, &w)
		elem, err := decodeTypeNode(w.Elem)
		if err != nil {
			return nil, err
		}
		return &ast.ArrayTypeNode{Position: w.Pos.toAST(), Elem: elem}, nil
	case "table":
		var w struct {
			Pos    wirePos           `json:"pos"`
			Fields []json.RawMessage `json:"fields"`
		}
		json.Unmarshal(raw, &w)
		fields, err := decodeFieldDecls(w.Fields)
		if err != nil {
			return nil, err
		}
		return &ast.TableTypeNode{Position: w.Pos.toAST(), Fields: fields}, nil
	case "function":
		var w struct {
			Pos  wirePos           `json:"pos"`
			Args []json.RawMessage `json:"args"`
			Rets []json.RawMessage `json:"rets"`
		}
		json.Unmarshal(raw, &w)
		args, err := decodeTypeNodes(w.Args)
		if err != nil {
			return nil, err
		}
		rets, err := decodeTypeNodes(w.Rets)
		if err != nil {
			return nil, err
		}
		return &ast.FunctionTypeNode{Position: w.Pos.toAST(), Args: args, Rets: rets}, nil
	}
	return nil, fmt.Errorf("unknown type-node kind %q", k.Kind)
}

func decodeTypeNodes(raws []json.RawMessage) ([]ast.TypeNode, error) {
	out := make([]ast.TypeNode, 0, len(raws))
	for _, r := range raws {
		tn, err := decodeTypeNode(r)
		if err != nil {
			return nil, err
		}
		out = append(out, tn)
	}
	return out, nil
}

func decodeBlock(raw json.RawMessage) (*ast.BlockStat, error) {
	st, err := decodeStat(raw)
	if err != nil {
		return nil, err
	}
	block, ok := st.(*ast.BlockStat)
	if !ok {
		return nil, fmt.Errorf("expected a block statement")
	}
	return block, nil
}

func decodeStat(raw json.RawMessage) (ast.Stat, error) {
	var k kinded
	if err := json.Unmarshal(raw, &k); err != nil {
		return nil, err
	}
	switch k.Kind {
	case "decl":
		var w struct {
			Pos   wirePos           `json:"pos"`
			Decls []json.RawMessage `json:"decls"`
			Exps  []json.RawMessage `json:"exps"`
		}
		json.Unmarshal(raw, &w)
		decls, err := decodeDecls(w.Decls)
		if err != nil {
			return nil, err
		}
		exps, err := decodeExps(w.Exps)
		if err != nil {
			return nil, err
		}
		return &ast.DeclStat{Position: w.Pos.toAST(), Decls: decls, Exps: exps}, nil
	case "block":
		var w struct {
			Pos  wirePos           `json:"pos"`
			Body []json.RawMessage `json:"body"`
		}
		json.Unmarshal(raw, &w)
		body := make([]ast.Stat, 0, len(w.Body))
		for _, r := range w.Body {
			s, err := decodeStat(r)
			if err != nil {
				return nil, err
			}
			body = append(body, s)
		}
		return &ast.BlockStat{Position: w.Pos.toAST(), Body: body}, nil
	case "while":
		var w struct {
			Pos  wirePos         `json:"pos"`
			Cond json.RawMessage `json:"cond"`
			Body json.RawMessage `json:"body"`
		}
		json.Unmarshal(raw, &w)
		cond, err := decodeExp(w.Cond)
		if err != nil {
			return nil, err
		}
		body, err := decodeBlock(w.Body)
		if err != nil {
			return nil, err
		}
		return &ast.WhileStat{Position: w.Pos.toAST(), Cond: cond, Body: body}, nil
	case "repeat":
		var w struct {
			Pos  wirePos         `json:"pos"`
			Body json.RawMessage `json:"body"`
			Cond json.RawMessage `json:"cond"`
		}
		json.Unmarshal(raw, &w)
		body, err := decodeBlock(w.Body)
		if err != nil {
			return nil, err
		}
		cond, err := decodeExp(w.Cond)
		if err != nil {
			return nil, err
		}
		return &ast.RepeatStat{Position: w.Pos.toAST(), Body: body, Cond: cond}, nil
	case "fornum":
		var w struct {
			Pos   wirePos         `json:"pos"`
			Decl  json.RawMessage `json:"decl"`
			Start json.RawMessage `json:"start"`
			Limit json.RawMessage `json:"limit"`
			Step  json.RawMessage `json:"step"`
			Body  json.RawMessage `json:"body"`
		}
		json.Unmarshal(raw, &w)
		decl, err := decodeDecl(w.Decl)
		if err != nil {
			return nil, err
		}
		start, err := decodeExp(w.Start)
		if err != nil {
			return nil, err
		}
		limit, err := decodeExp(w.Limit)
		if err != nil {
			return nil, err
		}
		var step ast.Exp
		if len(w.Step) > 0 && string(w.Step) != "null" {
			step, err = decodeExp(w.Step)
			if err != nil {
				return nil, err
			}
		}
		body, err := decodeBlock(w.Body)
		if err != nil {
			return nil, err
		}
		return &ast.ForNumStat{Position: w.Pos.toAST(), Decl: decl, Start: start, Limit: limit, Step: step, Body: body}, nil
	case "forin":
		var w struct {
			Pos   wirePos           `json:"pos"`
			Decls []json.RawMessage `json:"decls"`
			Exps  []json.RawMessage `json:"exps"`
			Body  json.RawMessage   `json:"body"`
		}
		json.Unmarshal(raw, &w)
		decls, err := decodeDecls(w.Decls)
		if err != nil {
			return nil, err
		}
		exps, err := decodeExps(w.Exps)
		if err != nil {
			return nil, err
		}
		body, err := decodeBlock(w.Body)
		if err != nil {
			return nil, err
		}
		return &ast.ForInStat{Position: w.Pos.toAST(), Decls: decls, Exps: exps, Body: body}, nil
	case "assign":
		var w struct {
			Pos wirePos           `json:"pos"`
			Lhs []json.RawMessage `json:"lhs"`
			Rhs []json.RawMessage `json:"rhs"`
		}
		json.Unmarshal(raw, &w)
		lhs := make([]ast.Var, 0, len(w.Lhs))
		for _, r := range w.Lhs {
			v, err := decodeVar(r)
			if err != nil {
				return nil, err
			}
			lhs = append(lhs, v)
		}
		rhs, err := decodeExps(w.Rhs)
		if err != nil {
			return nil, err
		}
		return &ast.AssignStat{Position: w.Pos.toAST(), Lhs: lhs, Rhs: rhs}, nil
	case "call":
		var w struct {
			Pos  wirePos         `json:"pos"`
			Call json.RawMessage `json:"call"`
		}
		json.Unmarshal(raw, &w)
		call, err := decodeExp(w.Call)
		if err != nil {
			return nil, err
		}
		return &ast.CallStat{Position: w.Pos.toAST(), Call: call}, nil
	case "return":
		var w struct {
			Pos  wirePos           `json:"pos"`
			Exps []json.RawMessage `json:"exps"`
		}
		json.Unmarshal(raw, &w)
		exps, err := decodeExps(w.Exps)
		if err != nil {
			return nil, err
		}
		return &ast.ReturnStat{Position: w.Pos.toAST(), Exps: exps}, nil
	case "if":
		var w struct {
			Pos  wirePos `json:"pos"`
			Arms []struct {
				Cond json.RawMessage `json:"cond"`
				Body json.RawMessage `json:"body"`
			} `json:"arms"`
			Else json.RawMessage `json:"else"`
		}
		json.Unmarshal(raw, &w)
		arms := make([]ast.IfArm, 0, len(w.Arms))
		for _, a := range w.Arms {
			cond, err := decodeExp(a.Cond)
			if err != nil {
				return nil, err
			}
			body, err := decodeBlock(a.Body)
			if err != nil {
				return nil, err
			}
			arms = append(arms, ast.IfArm{Cond: cond, Body: body})
		}
		var elseBlock *ast.BlockStat
		if len(w.Else) > 0 && string(w.Else) != "null" {
			b, err := decodeBlock(w.Else)
			if err != nil {
				return nil, err
			}
			elseBlock = b
		}
		return &ast.IfStat{Position: w.Pos.toAST(), Arms: arms, Else: elseBlock}, nil
	case "break":
		var w struct{ Pos wirePos `json:"pos"` }
		json.Unmarshal(raw, &w)
		return &ast.BreakStat{Position: w.Pos.toAST()}, nil
	case "func":
		var w struct {
			Pos      wirePos           `json:"pos"`
			Decl     json.RawMessage   `json:"decl"`
			Params   []json.RawMessage `json:"params"`
			RetTypes []json.RawMessage `json:"ret_types"`
			Body     json.RawMessage   `json:"body"`
		}
		json.Unmarshal(raw, &w)
		decl, err := decodeDecl(w.Decl)
		if err != nil {
			return nil, err
		}
		params, err := decodeDecls(w.Params)
		if err != nil {
			return nil, err
		}
		rets, err := decodeTypeNodes(w.RetTypes)
		if err != nil {
			return nil, err
		}
		body, err := decodeBlock(w.Body)
		if err != nil {
			return nil, err
		}
		return &ast.FuncStat{Position: w.Pos.toAST(), Decl: decl, Params: params, RetTypes: rets, Body: body}, nil
	}
	return nil, fmt.Errorf("unknown statement kind %q", k.Kind)
}

func decodeVar(raw json.RawMessage) (ast.Var, error) {
	var k kinded
	if err := json.Unmarshal(raw, &k); err != nil {
		return nil, err
	}
	switch k.Kind {
	case "name":
		var w struct {
			Pos  wirePos `json:"pos"`
			Name string  `json:"name"`
		}
		json.Unmarshal(raw, &w)
		return &ast.VarName{Position: w.Pos.toAST(), Name: w.Name}, nil
	case "dot":
		var w struct {
			Pos   wirePos         `json:"pos"`
			Base  json.RawMessage `json:"base"`
			Field string          `json:"field"`
		}
		json.Unmarshal(raw, &w)
		base, err := decodeExp(w.Base)
		if err != nil {
			return nil, err
		}
		return &ast.VarDot{Position: w.Pos.toAST(), Base: base, Field: w.Field}, nil
	case "bracket":
		var w struct {
			Pos   wirePos         `json:"pos"`
			Base  json.RawMessage `json:"base"`
			Index json.RawMessage `json:"index"`
		}
		json.Unmarshal(raw, &w)
		base, err := decodeExp(w.Base)
		if err != nil {
			return nil, err
		}
		index, err := decodeExp(w.Index)
		if err != nil {
			return nil, err
		}
		return &ast.VarBracket{Position: w.Pos.toAST(), Base: base, Index: index}, nil
	}
	return nil, fmt.Errorf("unknown var kind %q", k.Kind)
}

func decodeExps(raws []json.RawMessage) ([]ast.Exp, error) {
	out := make([]ast.Exp, 0, len(raws))
	for _, r := range raws {
		e, err := decodeExp(r)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func decodeExp(raw json.RawMessage) (ast.Exp, error) {
	var k kinded
	if err := json.Unmarshal(raw, &k); err != nil {
		return nil, err
	}
	switch k.Kind {
	case "nil":
		var w struct{ Pos wirePos `json:"pos"` }
		json.Unmarshal(raw, &w)
		return &ast.NilExp{Position: w.Pos.toAST()}, nil
	case "bool":
		var w struct {
			Pos   wirePos `json:"pos"`
			Value bool    `json:"value"`
		}
		json.Unmarshal(raw, &w)
		return &ast.BoolExp{Position: w.Pos.toAST(), Value: w.Value}, nil
	case "int":
		var w struct {
			Pos   wirePos `json:"pos"`
			Value int64   `json:"value"`
		}
		json.Unmarshal(raw, &w)
		return &ast.IntExp{Position: w.Pos.toAST(), Value: w.Value}, nil
	case "float":
		var w struct {
			Pos   wirePos `json:"pos"`
			Value float64 `json:"value"`
		}
		json.Unmarshal(raw, &w)
		return &ast.FloatExp{Position: w.Pos.toAST(), Value: w.Value}, nil
	case "string":
		var w struct {
			Pos   wirePos `json:"pos"`
			Value string  `json:"value"`
		}
		json.Unmarshal(raw, &w)
		return &ast.StringExp{Position: w.Pos.toAST(), Value: w.Value}, nil
	case "var":
		var w struct {
			Pos wirePos         `json:"pos"`
			Var json.RawMessage `json:"var"`
		}
		json.Unmarshal(raw, &w)
		v, err := decodeVar(w.Var)
		if err != nil {
			return nil, err
		}
		return &ast.VarExp{Position: w.Pos.toAST(), Var: v}, nil
	case "unop":
		var w struct {
			Pos     wirePos         `json:"pos"`
			Op      string          `json:"op"`
			Operand json.RawMessage `json:"operand"`
		}
		json.Unmarshal(raw, &w)
		operand, err := decodeExp(w.Operand)
		if err != nil {
			return nil, err
		}
		return &ast.UnopExp{Position: w.Pos.toAST(), Op: w.Op, Operand: operand}, nil
	case "binop":
		var w struct {
			Pos wirePos         `json:"pos"`
			Op  string          `json:"op"`
			Lhs json.RawMessage `json:"lhs"`
			Rhs json.RawMessage `json:"rhs"`
		}
		json.Unmarshal(raw, &w)
		lhs, err := decodeExp(w.Lhs)
		if err != nil {
			return nil, err
		}
		rhs, err := decodeExp(w.Rhs)
		if err != nil {
			return nil, err
		}
		return &ast.BinopExp{Position: w.Pos.toAST(), Op: w.Op, Lhs: lhs, Rhs: rhs}, nil
	case "initlist":
		var w struct {
			Pos    wirePos           `json:"pos"`
			Fields []json.RawMessage `json:"fields"`
		}
		json.Unmarshal(raw, &w)
		fields, err := decodeFields(w.Fields)
		if err != nil {
			return nil, err
		}
		return &ast.InitListExp{Position: w.Pos.toAST(), Fields: fields}, nil
	case "lambda":
		var w struct {
			Pos      wirePos           `json:"pos"`
			Params   []json.RawMessage `json:"params"`
			RetTypes []json.RawMessage `json:"ret_types"`
			Body     json.RawMessage   `json:"body"`
		}
		json.Unmarshal(raw, &w)
		params, err := decodeDecls(w.Params)
		if err != nil {
			return nil, err
		}
		rets, err := decodeTypeNodes(w.RetTypes)
		if err != nil {
			return nil, err
		}
		body, err := decodeBlock(w.Body)
		if err != nil {
			return nil, err
		}
		return &ast.LambdaExp{Position: w.Pos.toAST(), Params: params, RetTypes: rets, Body: body}, nil
	case "callfunc":
		var w struct {
			Pos  wirePos           `json:"pos"`
			Fn   json.RawMessage   `json:"fn"`
			Args []json.RawMessage `json:"args"`
		}
		json.Unmarshal(raw, &w)
		fn, err := decodeExp(w.Fn)
		if err != nil {
			return nil, err
		}
		args, err := decodeExps(w.Args)
		if err != nil {
			return nil, err
		}
		return &ast.CallFuncExp{Position: w.Pos.toAST(), Fn: fn, Args: args}, nil
	case "callmethod":
		var w struct {
			Pos      wirePos           `json:"pos"`
			Receiver json.RawMessage   `json:"receiver"`
			Method   string            `json:"method"`
			Args     []json.RawMessage `json:"args"`
		}
		json.Unmarshal(raw, &w)
		recv, err := decodeExp(w.Receiver)
		if err != nil {
			return nil, err
		}
		args, err := decodeExps(w.Args)
		if err != nil {
			return nil, err
		}
		return &ast.CallMethodExp{Position: w.Pos.toAST(), Receiver: recv, Method: w.Method, Args: args}, nil
	case "cast":
		var w struct {
			Pos    wirePos         `json:"pos"`
			Exp    json.RawMessage `json:"exp"`
			Target json.RawMessage `json:"target"`
		}
		json.Unmarshal(raw, &w)
		exp, err := decodeExp(w.Exp)
		if err != nil {
			return nil, err
		}
		target, err := decodeTypeNode(w.Target)
		if err != nil {
			return nil, err
		}
		return &ast.CastExp{Position: w.Pos.toAST(), Exp: exp, Target: target}, nil
	case "paren":
		var w struct {
			Pos wirePos         `json:"pos"`
			Exp json.RawMessage `json:"exp"`
		}
		json.Unmarshal(raw, &w)
		exp, err := decodeExp(w.Exp)
		if err != nil {
			return nil, err
		}
		return &ast.ParenExp{Position: w.Pos.toAST(), Exp: exp}, nil
	}
	return nil, fmt.Errorf("unknown expression kind %q", k.Kind)
}

func decodeFields(raws []json.RawMessage) ([]ast.Field, error) {
	out := make([]ast.Field, 0, len(raws))
	for _, raw := range raws {
		var k kinded
		if err := json.Unmarshal(raw, &k); err != nil {
			return nil, err
		}
		switch k.Kind {
		case "rec":
			var w struct {
				Pos   wirePos         `json:"pos"`
				Name  string          `json:"name"`
				Value json.RawMessage `json:"value"`
			}
			json.Unmarshal(raw, &w)
			value, err := decodeExp(w.Value)
			if err != nil {
				return nil, err
			}
			out = append(out, &ast.RecField{Position: w.Pos.toAST(), Name: w.Name, Value: value})
		case "list":
			var w struct {
				Pos   wirePos         `json:"pos"`
				Value json.RawMessage `json:"value"`
			}
			json.Unmarshal(raw, &w)
			value, err := decodeExp(w.Value)
			if err != nil {
				return nil, err
			}
			out = append(out, &ast.ListField{Position: w.Pos.toAST(), Value: value})
		default:
			return nil, fmt.Errorf("unknown field kind %q", k.Kind)
		}
	}
	return out, nil
}
