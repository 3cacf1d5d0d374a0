package dataset

import (
	"fmt"
	"strings"
	"time"

	"tabula/internal/model"
)

var (
	sampleFirst = []string{"Ada", "Grace", "Linus", "Ken", "Barbara", "Edsger", "Margaret", "Dennis", "Frances", "Alan"}
	sampleLast  = []string{"Lovelace", "Hopper", "Torvalds", "Thompson", "Liskov", "Dijkstra", "Hamilton", "Ritchie", "Allen", "Turing"}
	sampleRoles = []string{"admin", "editor", "viewer", "owner"}
)

// Sample returns a deterministic demo dataset of users.
func Sample() model.Dataset {
	const n = 57
	ds := model.Dataset{
		Name:    "users",
		Columns: []string{"id", "name", "email", "role", "age", "active", "joined"},
		Records: make([]model.Record, 0, n),
	}
	start := time.Date(2021, time.January, 4, 0, 0, 0, 0, time.UTC)

	for i := 0; i < n; i++ {
		first := sampleFirst[i%len(sampleFirst)]
		last := sampleLast[(i*3)%len(sampleLast)]
		rec := model.Record{
			"id":     model.Number(float64(i + 1)),
			"name":   model.String(first + " " + last),
			"email":  model.String(fmt.Sprintf("%s.%s@example.com", strings.ToLower(first), strings.ToLower(last))),
			"role":   model.String(sampleRoles[(i*7)%len(sampleRoles)]),
			"age":    model.Number(float64(21 + (i*13)%40)),
			"active": model.Bool(i%3 != 0),
			"joined": model.Date(start.AddDate(0, 0, i*17)),
		}
		if i%11 == 5 {
			rec["email"] = model.Null()
		}
		ds.Records = append(ds.Records, rec)
	}
	return ds
}
