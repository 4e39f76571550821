/*
Package formflow is a conversational workflow engine for filling commercial
insurance application forms (ACORD 125 and its dependent schedules) through a
guided chat.

It implements a multi-agent control loop: an orchestrator inspects the
session state once per iteration and dispatches exactly one sub-task
(conversation, validation, mapping, verification, document extraction,
notification or submission). The state is a single mutable record persisted
between turns, so sessions survive process restarts ("Durable Execution")
when backed by a persistent store such as Redis.

# Concept

The engine owns WHAT to ask and in which order; external collaborators own
HOW things sound and where documents live. Text generation, document I/O,
mail and quoting are ports with pluggable adapters, so the core stays fully
deterministic and testable.

# Usage

	package main

	import (
		"context"
		"log"
		"os"

		"github.com/inevo/formflow"
	)

	func main() {
		eng, err := formflow.New()
		if err != nil {
			log.Fatal(err)
		}

		runner := formflow.NewRunner()
		runner.Input = os.Stdin
		runner.Output = os.Stdout

		if err := runner.Run(context.Background(), eng); err != nil {
			log.Fatal(err)
		}
	}

For request/response integration (HTTP, MCP), drive the engine directly with
StartSession and HandleInput: each call runs the control loop until the
workflow either suspends for user input or completes.
*/
package formflow
