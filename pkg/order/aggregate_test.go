package order

import (
	"reflect"
	"testing"

	"github.com/makeajourney/asnisum/pkg/catalog"
)

func testAggregator() *Aggregator {
	cat := catalog.Default()
	return NewAggregator(NewFormatter(cat), NewCollator(cat.Language))
}

func TestLiveStatusGroupsAndCounts(t *testing.T) {
	a := testAggregator()

	orders := []Order{
		{UserID: "U1", Menu: "americano", Temperature: Hot, BeanOption: "dark"},
		{UserID: "U2", Menu: "americano", Temperature: Hot, BeanOption: "dark"},
		{UserID: "U3", Menu: "ice-tea", Temperature: Ice},
	}

	got := a.LiveStatus(orders)
	want := []Line{
		{Text: "아이스 아이스티", Count: 1},
		{Text: "따뜻한 아메리카노 다크(기본)", Count: 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestLiveStatusKoreanCollation(t *testing.T) {
	a := testAggregator()

	// 호지차, 감잎차, 아이스티 must come out in Korean collation order.
	orders := []Order{
		{UserID: "U1", Menu: "roasted-green-tea", Temperature: Hot},
		{UserID: "U2", Menu: "persimmon-leaf-tea", Temperature: Hot},
		{UserID: "U3", Menu: "ice-tea", Temperature: Ice},
	}

	got := a.LiveStatus(orders)
	want := []Line{
		{Text: "따뜻한 감잎차", Count: 1},
		{Text: "아이스 아이스티", Count: 1},
		{Text: "따뜻한 호지차", Count: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestLiveStatusTiesKeepFirstOccurrenceOrder(t *testing.T) {
	a := testAggregator()

	// Same menu, different bean options: distinct groups, insertion order.
	orders := []Order{
		{UserID: "U1", Menu: "americano", Temperature: Hot, BeanOption: "decaf"},
		{UserID: "U2", Menu: "americano", Temperature: Hot, BeanOption: "dark"},
		{UserID: "U3", Menu: "americano", Temperature: Hot, BeanOption: "decaf"},
	}

	got := a.LiveStatus(orders)
	want := []Line{
		{Text: "따뜻한 아메리카노 디카페인", Count: 2},
		{Text: "따뜻한 아메리카노 다크(기본)", Count: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestLiveStatusDistinctNotesStayDistinct(t *testing.T) {
	a := testAggregator()

	orders := []Order{
		{UserID: "U1", Menu: "milk-tea", Temperature: Hot, Note: "덜 달게"},
		{UserID: "U2", Menu: "milk-tea", Temperature: Hot, Note: "많이 달게"},
	}

	got := a.LiveStatus(orders)
	if len(got) != 2 {
		t.Fatalf("expected 2 groups, got %d: %+v", len(got), got)
	}
	if got[0].Count != 1 || got[1].Count != 1 {
		t.Errorf("expected separate singleton groups, got %+v", got)
	}
}

func TestLiveStatusDeterministic(t *testing.T) {
	a := testAggregator()

	orders := []Order{
		{UserID: "U1", Menu: "roasted-green-tea", Temperature: Hot},
		{UserID: "U2", Menu: "americano", Temperature: Ice, BeanOption: "dark"},
		{UserID: "U3", Menu: "roasted-green-tea", Temperature: Ice},
		{UserID: "U4", Menu: "persimmon-leaf-tea", Temperature: Hot},
	}

	first := a.LiveStatus(orders)
	for i := 0; i < 10; i++ {
		if got := a.LiveStatus(orders); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs: %+v vs %+v", i, got, first)
		}
	}
}

func TestCloseSummaryCompositeKeys(t *testing.T) {
	a := testAggregator()

	orders := []Order{
		{UserID: "U1", Menu: "americano", Temperature: Hot, BeanOption: "dark"},
		{UserID: "U2", Menu: "americano", Temperature: Hot, BeanOption: "dark"},
		{UserID: "U3", Menu: "americano", Temperature: Hot, BeanOption: "decaf"},
		{UserID: "U4", Menu: "ice-tea", Temperature: Ice},
	}

	got := a.CloseSummary(orders)
	want := []Line{
		{Text: "americano | hot | dark", Count: 2},
		{Text: "americano | hot | decaf", Count: 1},
		{Text: "ice-tea | ice", Count: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestCloseSummaryExtrasOrderIrrelevant(t *testing.T) {
	a := testAggregator()

	orders := []Order{
		{UserID: "U1", Menu: "americano", Temperature: Ice, BeanOption: "dark",
			ExtraOptions: []string{"less_ice", "extra_shot"}},
		{UserID: "U2", Menu: "americano", Temperature: Ice, BeanOption: "dark",
			ExtraOptions: []string{"extra_shot", "less_ice"}},
	}

	got := a.CloseSummary(orders)
	want := []Line{
		{Text: "americano | ice | dark | extra_shot+less_ice", Count: 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestCloseSummaryNotesSplitGroups(t *testing.T) {
	a := testAggregator()

	orders := []Order{
		{UserID: "U1", Menu: "milk-tea", Temperature: Hot, Note: "덜 달게"},
		{UserID: "U2", Menu: "milk-tea", Temperature: Hot, Note: "많이 달게"},
		{UserID: "U3", Menu: "milk-tea", Temperature: Hot},
	}

	got := a.CloseSummary(orders)
	if len(got) != 3 {
		t.Fatalf("expected 3 composite groups, got %d: %+v", len(got), got)
	}
}

func TestCloseSummarySameMenuStaysAdjacent(t *testing.T) {
	a := testAggregator()

	// Composite keys differ but share a menu; the menu-only sort must
	// keep them adjacent and in first-occurrence order.
	orders := []Order{
		{UserID: "U1", Menu: "milk-tea", Temperature: Hot},
		{UserID: "U2", Menu: "americano", Temperature: Hot, BeanOption: "decaf"},
		{UserID: "U3", Menu: "americano", Temperature: Ice, BeanOption: "dark"},
	}

	got := a.CloseSummary(orders)
	want := []Line{
		{Text: "americano | hot | decaf", Count: 1},
		{Text: "americano | ice | dark", Count: 1},
		{Text: "milk-tea | hot", Count: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestAggregateEmptyLedger(t *testing.T) {
	a := testAggregator()
	if got := a.LiveStatus(nil); len(got) != 0 {
		t.Errorf("live status of empty ledger: %+v", got)
	}
	if got := a.CloseSummary(nil); len(got) != 0 {
		t.Errorf("close summary of empty ledger: %+v", got)
	}
}
