package ring_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/matzehuels/ringapi/pkg/errors"
	"github.com/matzehuels/ringapi/pkg/ring"
)

func ExampleNewSubmitID() {
	req, err := ring.NewSubmitID("1abc", ring.DefaultSettings())
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(req.PDBID)

	_, err = ring.NewSubmitID("ABC", ring.DefaultSettings())
	fmt.Println(errors.GetCode(err))
	// Output:
	// 1ABC
	// INVALID_PARAMETER
}

func ExampleParseNetwork() {
	body := []byte(`{
		"nodes": [{"NodeId": "A:1:_:MET", "Chain": "A"}, {"NodeId": "A:5:_:LEU", "Chain": "A"}],
		"edges": [{"NodeId1": "A:1:_:MET", "NodeId2": "A:5:_:LEU", "Interaction": "HBOND:MC_MC", "Distance": 2.9}]
	}`)
	net, err := ring.ParseNetwork(body)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, e := range net.Edges {
		fmt.Printf("%s -[%s]- %s\n", e.Source, e.Type(), e.Target)
	}
	fmt.Println(net.Neighbors("A:5:_:LEU"))
	// Output:
	// A:1:_:MET -[HBOND]- A:5:_:LEU
	// [A:1:_:MET]
}

func ExampleClient_Run() {
	mux := http.NewServeMux()
	mux.HandleFunc("/submit", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"jobid":"42","status":"db"}`)
	})
	mux.HandleFunc("/status/42", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"_id":"42","status":"complete"}`)
	})
	mux.HandleFunc("/results/42", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"nodes":[{"NodeId":"a"},{"NodeId":"b"}],"edges":[{"NodeId1":"a","NodeId2":"b","Interaction":"VDW:SC_SC","Distance":3.4}]}`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client, err := ring.New(ring.WithBaseURL(server.URL), ring.WithPollInterval(10*time.Millisecond))
	if err != nil {
		fmt.Println(err)
		return
	}
	req, _ := ring.NewSubmitID("1ABC", ring.DefaultSettings())
	net, err := client.Run(context.Background(), req)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%d nodes, %d edges\n", len(net.Nodes), len(net.Edges))
	// Output: 2 nodes, 1 edges
}
