package orchestrator

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"
	nodex "github.com/tanpawarit/chative-retail-orchestrator/agent/nodes/orchestrator"
	statex "github.com/tanpawarit/chative-retail-orchestrator/agent/state"
)

// compileHandleTurnGraph builds the turn loop:
//
//	validate -> load -> begin -> classify -> route <-> worker ... -> save -> finalize
//
// route and the worker nodes form a cycle, so the graph runs with
// AnyPredecessor triggering and a bounded number of supersteps.
func (o *Orchestrator) compileHandleTurnGraph(
	ctx context.Context,
) (compose.Runnable[nodex.GraphInput, nodex.GraphOutput], error) {
	graph := compose.NewGraph[nodex.GraphInput, nodex.GraphOutput]()

	if err := graph.AddLambdaNode(nodex.NodeValidateRequest,
		compose.InvokableLambda(func(ctx context.Context, in nodex.GraphInput) (*nodex.TurnState, error) {
			return nodex.ValidateRequest(in, o.maxHops)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node validate_request: %w", err)
	}

	if err := graph.AddLambdaNode(nodex.NodeLoadState,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.TurnState) (*nodex.TurnState, error) {
			return nodex.LoadOrCreateState(ctx, in, o.store, o.userID, o.channel)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node load_or_create_state: %w", err)
	}

	if err := graph.AddLambdaNode(nodex.NodeBeginTurn,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.TurnState) (*nodex.TurnState, error) {
			return nodex.BeginTurn(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node begin_turn: %w", err)
	}

	if err := graph.AddLambdaNode(nodex.NodeClassifyIntent,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.TurnState) (*nodex.TurnState, error) {
			return nodex.ClassifyIntent(ctx, in, o.detector)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node classify_intent: %w", err)
	}

	if err := graph.AddLambdaNode(nodex.NodeRoute,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.TurnState) (*nodex.TurnState, error) {
			return nodex.Route(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node route: %w", err)
	}

	for _, step := range statex.Workers {
		if err := graph.AddLambdaNode(string(step),
			compose.InvokableLambda(func(ctx context.Context, in *nodex.TurnState) (*nodex.TurnState, error) {
				return nodex.DispatchWorker(ctx, in, step, o.catalog)
			}),
		); err != nil {
			return nil, fmt.Errorf("add node %s: %w", step, err)
		}
	}

	if err := graph.AddLambdaNode(nodex.NodeSaveState,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.TurnState) (*nodex.TurnState, error) {
			return nodex.ValidateAndSaveState(ctx, in, o.store)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node validate_and_save_state: %w", err)
	}

	if err := graph.AddLambdaNode(nodex.NodeFinalizeReply,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.TurnState) (nodex.GraphOutput, error) {
			return nodex.FinalizeReply(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node finalize_reply: %w", err)
	}

	classifyBranch := compose.NewGraphBranch(
		func(ctx context.Context, in *nodex.TurnState) (string, error) {
			return nodex.AfterClassify(in)
		},
		map[string]bool{
			nodex.NodeRoute:     true,
			nodex.NodeSaveState: true,
		},
	)
	if err := graph.AddBranch(nodex.NodeClassifyIntent, classifyBranch); err != nil {
		return nil, fmt.Errorf("add classify branch: %w", err)
	}

	routeEnds := map[string]bool{nodex.NodeSaveState: true}
	for _, step := range statex.Workers {
		routeEnds[string(step)] = true
	}
	routeBranch := compose.NewGraphBranch(
		func(ctx context.Context, in *nodex.TurnState) (string, error) {
			return nodex.NextNode(in)
		},
		routeEnds,
	)
	if err := graph.AddBranch(nodex.NodeRoute, routeBranch); err != nil {
		return nil, fmt.Errorf("add route branch: %w", err)
	}

	edges := [][2]string{
		{compose.START, nodex.NodeValidateRequest},
		{nodex.NodeValidateRequest, nodex.NodeLoadState},
		{nodex.NodeLoadState, nodex.NodeBeginTurn},
		{nodex.NodeBeginTurn, nodex.NodeClassifyIntent},
		{nodex.NodeSaveState, nodex.NodeFinalizeReply},
		{nodex.NodeFinalizeReply, compose.END},
	}
	for _, step := range statex.Workers {
		edges = append(edges, [2]string{string(step), nodex.NodeRoute})
	}

	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx,
		compose.WithGraphName("orchestrator.handle_turn"),
		compose.WithNodeTriggerMode(compose.AnyPredecessor),
		compose.WithMaxRunSteps(nodex.MaxRunSteps(o.maxHops)),
	)
	if err != nil {
		return nil, fmt.Errorf("compile orchestrator graph: %w", err)
	}
	return runner, nil
}
