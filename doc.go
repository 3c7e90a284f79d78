// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package ajax provides a small asynchronous HTTP client which reports
every request through a Promise and every failure through a closed set
of failure tags.

Create a Client to begin making requests.

	client := &ajax.Client{}
	body, err := client.Get("https://www.example.com", nil).Wait()
	...
	doc, err := client.GetJSON("https://www.example.com/api", nil).Wait()
	...
	body, err := client.Post("https://www.example.com/form",
		form.Fields{{Key: "key", Value: "Value"}, {Key: "id", Value: 123}},
		nil).Wait()

Requests start immediately and never block the caller. A promise
settles exactly once, either with a value or with one of the tags from
package failure:

	switch _, err := p.Wait(); err {
	case nil:
		...
	case failure.Request, failure.Server:
		...
	case failure.Network:
		...
	}

To watch a transfer, pass a progress callback. It may be called any
number of times, but never after the promise settles:

	p := client.Get(url, func(pr request.Progress) {
		fmt.Println(pr)
	})

To stop a request, call Abort on its promise, or cancel the context of
its request plan. Either way the promise settles with failure.Aborted,
unless the request had already completed.

For control over how the client sends HTTP requests and receives HTTP
responses, use a custom HTTPDoer. For example, use a GoLang standard
HTTP client:

	doer := &http.Client{
		..., // See package "net/http" for detailed documentation
	}
	client := &ajax.Client{
		HTTPDoer: doer,
	}

Package transport has ready-made HTTPDoer constructors.

To hook into the fine-grained details of the client's request execution
logic, install a handler into the appropriate handler chain:

	handlers := &ajax.HandlerGroup{}
	handlers.PushBack(ajax.AfterSettle, ajax.HandlerFunc(
		func(_ ajax.Event, e *request.Execution) {
			log.Printf("%s settled: %v", e.Request.URL, e.Failure)
		})
	)
	client := &ajax.Client{
		Handlers: handlers,
	}

Package logging installs structured logging handlers of this kind.

Package ajax provides basic interfaces for each method of the client
(Requester, Getter, JSONGetter, Poster, and IdleCloser); a combined
interface that composes all the basic methods (Executor); and utility
functions for working with a Requester (Inflate, Get, GetJSON, Post,
and PostValue).
*/
package ajax
