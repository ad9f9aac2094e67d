package calc

// Names of the built-in calculations.
const (
	Total    = "total"
	TotalM3  = "total-3"
	TotalM6  = "total-6"
	ToEnd    = "toEnd"
	ToLast3  = "toLast3"
	ToLast4  = "toLast4"
	ToMarker = "toMarker"
)

func registerBuiltins(r *Registry) {
	builtins := []struct {
		name string
		fn   Func
		desc string
	}{
		{Total, func(c RowContext) (int, error) { return c.StartingCount, nil }, "starting count of the row"},
		{TotalM3, offsetFromTotal(3), "starting count minus 3"},
		{TotalM6, offsetFromTotal(6), "starting count minus 6"},
		{ToEnd, func(c RowContext) (int, error) { return c.Remaining(), nil }, "all stitches not yet worked"},
		{ToLast3, offsetFromRemaining(3), "stitches not yet worked minus 3"},
		{ToLast4, offsetFromRemaining(4), "stitches not yet worked minus 4"},
		{ToMarker, func(c RowContext) (int, error) { return c.StartingCount / 3, nil }, "floor(starting count / 3); approximates the first marker"},
	}
	for _, b := range builtins {
		if err := r.add(b.name, b.fn, b.desc, true); err != nil {
			panic(err.Error())
		}
	}
}

func offsetFromTotal(n int) Func {
	return func(c RowContext) (int, error) {
		return c.StartingCount - n, nil
	}
}

func offsetFromRemaining(n int) Func {
	return func(c RowContext) (int, error) {
		return c.Remaining() - n, nil
	}
}
