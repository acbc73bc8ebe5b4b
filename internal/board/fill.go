package board

// cellTodo is a linked-list worklist over cell indexes. next is indexed by
// cell and doubles as the visited structure's storage; a cell is enqueued
// at most once per fill.
type cellTodo struct {
	next       []int
	head, tail int
}

func newCellTodo(n int) *cellTodo {
	return &cellTodo{next: make([]int, n), head: -1, tail: -1}
}

func (std *cellTodo) add(i int) {
	if std.tail >= 0 {
		std.next[std.tail] = i
	} else {
		std.head = i
	}
	std.tail = i
	std.next[i] = -1
}

func (std *cellTodo) pop() int {
	if std.head < 0 {
		return -1
	}
	i := std.head
	std.head = std.next[i]
	if std.head < 0 {
		std.tail = -1
	}
	return i
}

// expose reveals the cell at index start and flood-fills from it: whenever
// a revealed cell turns out to have no mined neighbors, every covered
// neighbor without a mine flag is queued for the same treatment. A mine at
// start explodes and nothing cascades (a zero-count cell has no mined
// neighbors, so only start can ever be one). Each cell is visited at most
// once. The receiver must own a fresh cell slice.
func (b *Board) expose(start int) {
	todo := newCellTodo(len(b.cells))
	queued := make([]bool, len(b.cells))
	todo.add(start)
	queued[start] = true

	for i := todo.pop(); i >= 0; i = todo.pop() {
		n := b.countNearby(i)
		b.cells[i].State = Exposed{Exploded: b.cells[i].Mine, MinesNearby: n}
		if b.cells[i].Mine || n != 0 {
			continue
		}
		row, col := i/b.cols, i%b.cols
		for _, d := range neighborOffsets {
			r, c := row+d[0], col+d[1]
			if r < 0 || r >= b.rows || c < 0 || c >= b.cols {
				continue
			}
			j := r*b.cols + c
			if queued[j] {
				continue
			}
			if cov, covered := b.cells[j].State.(Covered); covered && cov.Marker != MarkerMine {
				queued[j] = true
				todo.add(j)
			}
		}
	}
}
