package predicate

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/essential-contributions/essential-base-sub001/go/solution"
	"github.com/essential-contributions/essential-base-sub001/go/types"
	"github.com/essential-contributions/essential-base-sub001/go/vm"
)

// PredicateResolver looks up a predicate by address (spec §4.12:
// "a predicate resolver fn(PredicateAddress) -> Predicate").
type PredicateResolver func(types.PredicateAddress) (*Predicate, error)

// Result is the outcome of a complete check: a boolean verdict and the
// total gas spent across every node of every solution (spec §4.12 step
// 5, §7 "a complete check returns ... Ok{verdict, gas}").
type Result struct {
	Verdict bool
	Gas     types.Gas
}

// Check runs every solution in set against its predicate and folds
// the per-solution verdicts into one (spec §4.12). Solutions are
// independent (the fold is commutative AND/sum) and are evaluated
// concurrently; a gas-limit breach or any other error in one solution
// cancels the shared ctx, with no partial Result (spec §5
// "Cancellation"). The cancellation is observed only by a solution
// whose goroutine has not yet begun checking; a solution already being
// checked runs to completion, and Check returns the first error once
// every goroutine has returned.
func Check(
	ctx context.Context,
	set solution.SolutionSet,
	resolvePredicate PredicateResolver,
	resolveProgram ProgramResolver,
	preState, postState vm.StateReader,
	gasCost vm.GasCostFunc,
	gasLimit types.Gas,
) (Result, error) {
	lazy := &vm.LazyCache{}
	fingerprints := func() map[types.ContentAddress]struct{} {
		return solution.Fingerprints(set)
	}
	mutKeysBySolution := set.MutableKeys()
	mutKeys := make([]types.Key, 0, len(mutKeysBySolution))
	for _, k := range mutKeysBySolution {
		mutKeys = append(mutKeys, k)
	}

	g, gctx := errgroup.WithContext(ctx)
	gasPerSolution := make([]types.Gas, len(set))
	verdictPerSolution := make([]bool, len(set))

	for i := range set {
		i := i
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			verdict, spent, err := checkSolution(
				set[i], resolvePredicate, resolveProgram,
				preState, postState, gasCost, gasLimit,
				lazy, fingerprints, mutKeys,
			)
			if err != nil {
				return SolutionError{SolutionIndex: i, Err: err}
			}
			verdictPerSolution[i] = verdict
			gasPerSolution[i] = spent
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	var total types.Gas
	verdict := true
	for i := range set {
		total += gasPerSolution[i]
		verdict = verdict && verdictPerSolution[i]
	}
	if total > gasLimit {
		return Result{}, vm.OutOfGasError{Spent: total, OpGas: 0, Limit: gasLimit}
	}
	return Result{Verdict: verdict, Gas: total}, nil
}

// checkSolution walks one solution's predicate DAG in topological
// order, running a fresh VM per node (spec §4.12 steps 2-4).
func checkSolution(
	sol solution.Solution,
	resolvePredicate PredicateResolver,
	resolveProgram ProgramResolver,
	preState, postState vm.StateReader,
	gasCost vm.GasCostFunc,
	gasLimit types.Gas,
	lazy *vm.LazyCache,
	fingerprints vm.FingerprintsFunc,
	mutKeys []types.Key,
) (verdict bool, gasSpent types.Gas, err error) {
	pred, err := resolvePredicate(sol.PredicateToSolve)
	if err != nil {
		return false, 0, err
	}
	if err := Validate(pred, resolveProgram); err != nil {
		return false, 0, err
	}

	order, err := topoOrder(pred)
	if err != nil {
		return false, 0, err
	}

	thisAddr := sol.PredicateToSolve.Predicate
	thisContract := sol.PredicateToSolve.Contract

	preSlots := make([][][]types.Word, len(pred.Nodes))
	postSlots := make([][][]types.Word, len(pred.Nodes))

	var spent types.Gas
	leafVerdict := true

	for _, i := range order {
		node := pred.Nodes[i]
		program, err := resolveProgram(node.ProgramAddress)
		if err != nil {
			return false, 0, NodeError{NodeIndex: i, Err: err}
		}
		mapped, err := vm.NewBytecodeMapped(program)
		if err != nil {
			return false, 0, NodeError{NodeIndex: i, Err: err}
		}

		access := &vm.Access{
			PredicateData:       sol.PredicateData,
			PreSlots:            preSlots[i],
			PostSlots:           postSlots[i],
			MutKeys:             mutKeys,
			ThisAddress:         thisAddr,
			ThisContractAddress: thisContract,
			Fingerprints: func(hash types.ContentAddress) bool {
				return lazy.Contains(fingerprints, hash)
			},
		}

		nodeVM := &vm.VM{
			Program: mapped,
			Stack:   vm.NewStack(),
			Memory:  vm.NewMemory(),
			Repeat:  vm.NewRepeat(),
			Access:  access,
			GasCost: gasCost,
			Gas:     spent,
			GasMax:  gasLimit,
		}
		if node.Reads == ReadsPre {
			nodeVM.PreState = preState
		} else {
			nodeVM.PostState = postState
		}

		halted, runErr := nodeVM.Run()
		if runErr != nil {
			vm.ReturnStack(nodeVM.Stack)
			return false, 0, NodeError{NodeIndex: i, Err: runErr}
		}
		spent = nodeVM.Gas

		if node.IsLeaf() {
			if !halted || nodeVM.Stack.Len() != 1 {
				vm.ReturnStack(nodeVM.Stack)
				return false, 0, NodeError{NodeIndex: i, Err: vm.ErrInvalidEvaluation}
			}
			top, _ := nodeVM.Stack.Peek(0)
			boolVal, ok := types.BoolFromWord(top)
			if !ok {
				vm.ReturnStack(nodeVM.Stack)
				return false, 0, NodeError{NodeIndex: i, Err: vm.ErrInvalidEvaluation}
			}
			leafVerdict = leafVerdict && boolVal
		}

		finalMemory, err := nodeVM.Memory.LoadRange(0, nodeVM.Memory.Length())
		if err != nil {
			vm.ReturnStack(nodeVM.Stack)
			return false, 0, NodeError{NodeIndex: i, Err: err}
		}
		vm.ReturnStack(nodeVM.Stack)

		for _, c := range pred.ChildrenOf(i) {
			childPre := append(append([][]types.Word(nil), preSlots[i]...), preSlots[c]...)
			childPost := append(append([][]types.Word(nil), postSlots[i]...), postSlots[c]...)
			if node.Reads == ReadsPre {
				childPre = append(childPre, finalMemory)
			} else {
				childPost = append(childPost, finalMemory)
			}
			preSlots[c] = childPre
			postSlots[c] = childPost
		}
	}

	return leafVerdict, spent, nil
}

// topoOrder computes a topological order of pred's nodes via Kahn's
// algorithm (spec §4.12 step 3: "Execute nodes in topological order").
func topoOrder(pred *Predicate) ([]int, error) {
	inDegree := make([]int, len(pred.Nodes))
	for i := range pred.Nodes {
		for _, c := range pred.ChildrenOf(i) {
			inDegree[c]++
		}
	}

	var queue []int
	for i, d := range inDegree {
		if d == 0 {
			queue = append(queue, i)
		}
	}

	order := make([]int, 0, len(pred.Nodes))
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		order = append(order, i)
		for _, c := range pred.ChildrenOf(i) {
			inDegree[c]--
			if inDegree[c] == 0 {
				queue = append(queue, int(c))
			}
		}
	}
	if len(order) != len(pred.Nodes) {
		return nil, ErrCycle
	}
	return order, nil
}
