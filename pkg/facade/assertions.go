package facade

import "github.com/mnohosten/changetrack/pkg/subject"

// Compile-time checks that every concrete reactive collection satisfies its
// shape's capability interfaces.
var (
	_ MutableSet[int]     = (*subject.Set[int])(nil)
	_ ObservableSet[int]  = (*subject.Set[int])(nil)

	_ MutableDictionary[string, int]    = (*subject.Dictionary[string, int])(nil)
	_ ObservableDictionary[string, int] = (*subject.Dictionary[string, int])(nil)

	_ MutableCache[string, int]    = (*subject.Cache[string, int])(nil)
	_ ObservableCache[string, int] = (*subject.Cache[string, int])(nil)

	_ MutableList[int]    = (*subject.List[int])(nil)
	_ ObservableList[int] = (*subject.List[int])(nil)
)
