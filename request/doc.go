// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request contains the core types Plan (describes a single HTTP
request) and Execution (describes the state of a Plan execution), and
the Progress type reported while request and response bodies are
transferred.

A Plan is a stripped-down http.Request: a GET or POST method, a URL, an
optional pre-encoded form body and an optional progress callback. Create
a plan and hand it to an ajax.Client:

	p, err := request.NewPlan("POST", "https://example.com/save", form.Raw("a=1"))
	...
	body, err := client.Do(p).Wait()

A plan may be assigned a context. Cancelling the context aborts the
execution, which then settles with failure.Aborted:

	p, err := request.NewPlanWithContext(ctx, "GET", "https://example.com", nil)

The second core type is Execution, which represents the state of the
execution of a Plan. It is handed to event handlers while the plan
executes, and can be retrieved from a settled promise. You will
typically not allocate Execution instances yourself.
*/
package request
