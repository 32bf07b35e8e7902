package main

import (
	"fmt"
	"math/rand"
	"sync/atomic"

	"github.com/vango-dev/vtree/internal/config"
	"github.com/vango-dev/vtree/pkg/program"
	"github.com/vango-dev/vtree/pkg/vdom"
)

type item struct {
	Key   string
	Label string
}

type benchModel struct {
	Items []item
	Next  int // next fresh key
	Cycle int
}

// mutate asks the workload to change its list once.
type mutate struct{}

// workload is a program whose list changes according to a scenario.
type workload struct {
	scenario config.Scenario
	rng      *rand.Rand
	views    atomic.Int64
}

func newWorkload(s config.Scenario) *workload {
	return &workload{
		scenario: s,
		rng:      rand.New(rand.NewSource(s.Seed)),
	}
}

func (w *workload) program() program.Program[benchModel] {
	return program.Program[benchModel]{
		Init:   w.init(),
		Update: w.update,
		View:   w.view,
	}
}

func (w *workload) init() benchModel {
	m := benchModel{Items: make([]item, 0, w.scenario.ListSize)}
	for i := 0; i < w.scenario.ListSize; i++ {
		m.Items = append(m.Items, w.fresh(&m))
	}
	return m
}

func (w *workload) fresh(m *benchModel) item {
	it := item{Key: fmt.Sprintf("k%d", m.Next), Label: fmt.Sprintf("Item %d", m.Next)}
	m.Next++
	return it
}

// update applies one mutation. Items is copied first so earlier models
// are never modified.
func (w *workload) update(m benchModel, msg vdom.Msg) benchModel {
	if _, ok := msg.(mutate); !ok {
		return m
	}
	m.Cycle++
	items := append([]item(nil), m.Items...)

	switch w.scenario.Mutation {
	case config.MutationShuffle:
		w.rng.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
	case config.MutationAppend:
		items = append(items, w.fresh(&m))
	case config.MutationRemove:
		if len(items) == 0 {
			for i := 0; i < w.scenario.ListSize; i++ {
				items = append(items, w.fresh(&m))
			}
			break
		}
		i := w.rng.Intn(len(items))
		items = append(items[:i], items[i+1:]...)
	case config.MutationReplace:
		if len(items) > 0 {
			items[w.rng.Intn(len(items))] = w.fresh(&m)
		}
	case config.MutationText:
		if len(items) > 0 {
			i := w.rng.Intn(len(items))
			items[i].Label = fmt.Sprintf("%s (%d)", items[i].Key, m.Cycle)
		}
	}

	m.Items = items
	return m
}

func (w *workload) view(m benchModel) *vdom.VNode {
	w.views.Add(1)

	row := func(it item, i int) *vdom.VNode {
		return vdom.Li(
			vdom.Data("key", it.Key),
			vdom.ClassList(map[string]bool{"odd": i%2 == 1}),
			vdom.Span(vdom.Class("label"), it.Label),
		)
	}

	var list *vdom.VNode
	if w.scenario.Keyed {
		list = vdom.Ul(vdom.KeyedRange(m.Items, func(it item) string { return it.Key }, row))
	} else {
		list = vdom.Ul(vdom.Range(m.Items, row))
	}

	return vdom.Div(
		vdom.ID("bench"),
		vdom.H1(vdom.Textf("%s #%d", w.scenario.Name, m.Cycle)),
		list,
	)
}
