package libgaroon

import (
	"context"
	"errors"
	"testing"
)

// fakeList serves total integers in pages and counts the calls made
type fakeList struct {
	total   int
	calls   int
	offsets []int
}

func (f *fakeList) fetch(_ context.Context, offset, limit int) (Page[int], error) {
	f.calls++
	f.offsets = append(f.offsets, offset)

	end := offset + limit
	if end > f.total {
		end = f.total
	}
	var items []int
	for i := offset; i < end; i++ {
		items = append(items, i)
	}
	return Page[int]{Items: items, HasNext: end < f.total}, nil
}

func TestFetchAllPageCount(t *testing.T) {
	tests := []struct {
		total     int
		pageSize  int
		wantCalls int
	}{
		{total: 0, pageSize: 100, wantCalls: 1},
		{total: 1, pageSize: 100, wantCalls: 1},
		{total: 100, pageSize: 100, wantCalls: 1},
		{total: 101, pageSize: 100, wantCalls: 2},
		{total: 250, pageSize: 100, wantCalls: 3},
		{total: 7, pageSize: 2, wantCalls: 4},
	}

	for _, tt := range tests {
		list := &fakeList{total: tt.total}
		items, err := FetchAll(context.Background(), list.fetch, tt.pageSize)
		if err != nil {
			t.Fatalf("FetchAll(%d/%d) failed: %v", tt.total, tt.pageSize, err)
		}

		if list.calls != tt.wantCalls {
			t.Errorf("FetchAll(%d/%d): expected %d calls, got %d", tt.total, tt.pageSize, tt.wantCalls, list.calls)
		}
		if len(items) != tt.total {
			t.Errorf("FetchAll(%d/%d): expected %d items, got %d", tt.total, tt.pageSize, tt.total, len(items))
		}
		for i, v := range items {
			if v != i {
				t.Errorf("FetchAll(%d/%d): item %d out of order (%d)", tt.total, tt.pageSize, i, v)
				break
			}
		}
	}
}

func TestFetchAllEmptyIsNotNil(t *testing.T) {
	list := &fakeList{}
	items, err := FetchAll(context.Background(), list.fetch, 10)
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	if items == nil {
		t.Error("Expected an empty, non-nil slice")
	}
}

func TestFetchAllOffsets(t *testing.T) {
	list := &fakeList{total: 250}
	if _, err := FetchAll(context.Background(), list.fetch, 100); err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}

	want := []int{0, 100, 200}
	if len(list.offsets) != len(want) {
		t.Fatalf("Expected offsets %v, got %v", want, list.offsets)
	}
	for i := range want {
		if list.offsets[i] != want[i] {
			t.Errorf("Expected offsets %v, got %v", want, list.offsets)
			break
		}
	}
}

func TestFetchAllShortPages(t *testing.T) {
	// The server may return fewer items than requested and still have more.
	var offsets []int
	fetch := func(_ context.Context, offset, limit int) (Page[int], error) {
		offsets = append(offsets, offset)
		if offset < 3 {
			return Page[int]{Items: []int{offset}, HasNext: true}, nil
		}
		return Page[int]{Items: []int{offset}}, nil
	}

	items, err := FetchAll(context.Background(), fetch, 100)
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	if len(items) != 4 {
		t.Errorf("Expected 4 items, got %v", items)
	}
	if offsets[1] != 1 {
		t.Errorf("Expected offset to advance by items received, got %v", offsets)
	}
}

func TestFetchAllProtocolViolation(t *testing.T) {
	calls := 0
	fetch := func(_ context.Context, offset, limit int) (Page[int], error) {
		calls++
		if offset == 0 {
			return Page[int]{Items: []int{1, 2}, HasNext: true}, nil
		}
		return Page[int]{HasNext: true}, nil
	}

	items, err := FetchAll(context.Background(), fetch, 2)
	if !errors.Is(err, ErrPaginationProtocol) {
		t.Fatalf("Expected ErrPaginationProtocol, got %v", err)
	}

	var protoErr *PaginationProtocolError
	if !errors.As(err, &protoErr) || protoErr.Offset != 2 {
		t.Errorf("Expected violation at offset 2, got %v", err)
	}
	if items != nil {
		t.Errorf("Expected no partial results, got %v", items)
	}
	if calls != 2 {
		t.Errorf("Expected the loop to stop after 2 calls, got %d", calls)
	}
}

func TestFetchAllErrorDiscardsPartialResults(t *testing.T) {
	boom := errors.New("boom")
	fetch := func(_ context.Context, offset, limit int) (Page[int], error) {
		if offset == 0 {
			return Page[int]{Items: []int{1}, HasNext: true}, nil
		}
		return Page[int]{}, boom
	}

	items, err := FetchAll(context.Background(), fetch, 1)
	if !errors.Is(err, boom) {
		t.Fatalf("Expected wrapped error, got %v", err)
	}
	if items != nil {
		t.Errorf("Expected no partial results, got %v", items)
	}
}

func TestPaginatorNext(t *testing.T) {
	list := &fakeList{total: 3}
	p, err := NewPaginator(list.fetch, 2)
	if err != nil {
		t.Fatalf("NewPaginator failed: %v", err)
	}

	page, err := p.Next(context.Background())
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if len(page.Items) != 2 || !page.HasNext || p.Done() || p.Offset() != 2 {
		t.Errorf("Unexpected state after first page: items=%v done=%v offset=%d", page.Items, p.Done(), p.Offset())
	}

	page, err = p.Next(context.Background())
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if len(page.Items) != 1 || !p.Done() {
		t.Errorf("Unexpected state after last page: items=%v done=%v", page.Items, p.Done())
	}

	page, err = p.Next(context.Background())
	if err != nil || len(page.Items) != 0 {
		t.Errorf("Expected an empty page after Done, got %v, %v", page.Items, err)
	}
	if list.calls != 2 {
		t.Errorf("Expected no fetch after Done, got %d calls", list.calls)
	}
}

func TestNewPaginatorValidation(t *testing.T) {
	if _, err := NewPaginator[int](nil, 10); err == nil {
		t.Error("Expected error for nil page function")
	}

	list := &fakeList{}
	if _, err := NewPaginator(list.fetch, 0); err == nil {
		t.Error("Expected error for zero page size")
	}
}
