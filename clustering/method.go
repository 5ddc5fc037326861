package clustering

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

type Method string

const (
	KMeans        Method = "kmeans"
	DBSCAN        Method = "dbscan"
	Hierarchical  Method = "hierarchical"
	MeanShift     Method = "meanshift"
	Agglomerative Method = "agglomerative"
)

var (
	ErrInvalidMethod = errors.New("invalid clustering method")
	ErrInvalidParams = errors.New("invalid clustering parameters")
)

// Methods returns the recognized methods in display order.
func Methods() []Method {
	return []Method{KMeans, DBSCAN, Hierarchical, MeanShift, Agglomerative}
}

// ChoiceMessage is the user-facing message for an unknown method name.
func ChoiceMessage() string {
	ms := Methods()
	quoted := make([]string, len(ms))
	for i, m := range ms {
		quoted[i] = fmt.Sprintf("'%s'", m)
	}
	last := len(quoted) - 1
	return fmt.Sprintf("Invalid clustering method. Choose %s, or %s.",
		strings.Join(quoted[:last], ", "), quoted[last])
}

// ParseMethod matches s against Methods after trimming spaces and folding
// case, so " KMEANS " selects kmeans. An exact-match dispatch would reject
// it with a 400.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Methods() {
		if m == known {
			return m, nil
		}
	}
	err := errors.Mark(errors.Newf("%s", ChoiceMessage()), ErrInvalidMethod)
	return "", errors.WithHintf(err, "got %q", s)
}
