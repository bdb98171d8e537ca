package models

import (
	"fmt"
	"sort"
	"strings"
)

// ServiceType tags the streaming service a waiting entry or room belongs to.
type ServiceType string

const (
	Netflix ServiceType = "NETFLIX"
	Wavve   ServiceType = "WAVVE"
	Tving   ServiceType = "TVING"
)

// quorums maps each supported service to the number of non-leader members
// a group needs. The leader is not counted.
var quorums = map[ServiceType]int{
	Netflix: 2,
	Wavve:   3,
	Tving:   3,
}

// Quorum returns the number of non-leader members required to form a group
// for the given service.
func Quorum(t ServiceType) (int, error) {
	n, ok := quorums[t]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedServiceType, string(t))
	}
	return n, nil
}

// GroupSize returns the total room size (leader included) for the service.
func GroupSize(t ServiceType) (int, error) {
	n, err := Quorum(t)
	if err != nil {
		return 0, err
	}
	return n + 1, nil
}

// ParseServiceType normalizes a client supplied tag ("netflix", " Netflix ")
// and checks it against the quorum table.
func ParseServiceType(s string) (ServiceType, error) {
	t := ServiceType(strings.ToUpper(strings.TrimSpace(s)))
	if _, err := Quorum(t); err != nil {
		return "", err
	}
	return t, nil
}

// ServiceTypes returns all supported services in a stable order.
func ServiceTypes() []ServiceType {
	types := make([]ServiceType, 0, len(quorums))
	for t := range quorums {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
