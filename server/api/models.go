package api

import (
	"time"

	"github.com/dekarrin/prepll/internal/grammar"
	"github.com/dekarrin/prepll/server/dao"
)

// note that these are *not* the DAO models; those are distinct and closer to
// the DB format they are in. Rather these are the models that are received from
// and sent to the client.

type InfoModel struct {
	Version struct {
		Server string `json:"server"`
		Prepll string `json:"prepll"`
	} `json:"version"`
}

type AnalysisRequest struct {
	Productions []string `json:"productions"`
	Word        string   `json:"word"`
}

type AnalysisModel struct {
	URI         string   `json:"uri"`
	ID          string   `json:"id"`
	Productions []string `json:"productions"`
	Word        string   `json:"word"`
	Created     string   `json:"created"`

	// each rule of the grammar as "A -> alt | alt"
	NoLeftRecursion []string `json:"no_left_recursion"`
	Factored        []string `json:"factored"`

	First    map[string][]string `json:"first"`
	Follow   map[string][]string `json:"follow"`
	Warnings []string            `json:"warnings"`
}

func analysisToModel(a dao.Analysis) AnalysisModel {
	m := AnalysisModel{
		URI:             PathPrefix + "/analyses/" + a.ID.String(),
		ID:              a.ID.String(),
		Productions:     a.Productions,
		Word:            a.Word,
		Created:         a.Created.Format(time.RFC3339),
		NoLeftRecursion: ruleStrings(a.Result.NoLeftRecursion),
		Factored:        ruleStrings(a.Result.Factored),
		First:           setStrings(a.Result.First.NonTerminals(), a.Result.First.Get),
		Follow:          setStrings(a.Result.Follow.NonTerminals(), a.Result.Follow.Get),
		Warnings:        a.Result.Warnings,
	}

	if m.Productions == nil {
		m.Productions = []string{}
	}
	if m.Warnings == nil {
		m.Warnings = []string{}
	}

	return m
}

func ruleStrings(g grammar.Grammar) []string {
	rules := g.Rules()
	strs := make([]string, len(rules))
	for i := range rules {
		strs[i] = rules[i].String()
	}
	return strs
}

func setStrings(nonTerminals []string, get func(string) []grammar.Symbol) map[string][]string {
	sets := make(map[string][]string, len(nonTerminals))
	for _, nt := range nonTerminals {
		syms := get(nt)
		strs := make([]string, len(syms))
		for i := range syms {
			strs[i] = syms[i].String()
		}
		sets[nt] = strs
	}
	return sets
}
