package rsl

import (
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
)

//SplitNodeDescription returns the description of the split node for rendering as a graph
func SplitNodeDescription(split RankedSplit, ds *Dataset) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintln("#", split.Distribution().Total()))
	sb.WriteString(fmt.Sprintln("rmi: ", split.RMI()))
	sb.WriteString(split.LeftSide(ds))
	return sb.String()
}

//BranchDescription returns the description of one branch of a split for rendering as a graph
func BranchDescription(split RankedSplit, ds *Dataset, branch int) string {
	var sb strings.Builder
	sb.WriteString(split.LeftSide(ds))
	sb.WriteString(fmt.Sprintln(split.RightSide(branch, ds)))
	sb.WriteString("[")
	distribution := split.Distribution()
	for class := 0; class < distribution.NumClasses(); class++ {
		sb.WriteString(fmt.Sprintf("  %6.2f,\n", distribution.PerClassPerBag(branch, class)))
	}
	sb.WriteString("]\n")
	sb.WriteString(fmt.Sprintln(distribution.PerBag(branch)))
	return sb.String()
}

//DrawGraph renders a found split as a root node with one box per branch.
func DrawGraph(split RankedSplit, ds *Dataset) (*graphviz.Graphviz, *cgraph.Graph, error) {
	if split.NumSubsets() == 0 {
		return nil, nil, malformed("attribute %d has no split to draw", split.AttIndex())
	}

	graphViz := graphviz.New()
	graph, err := graphViz.Graph()
	if err != nil {
		return nil, nil, err
	}

	rootNode, err := graph.CreateNode("split")
	if err != nil {
		return nil, nil, err
	}
	rootNode.Set("label", SplitNodeDescription(split, ds))

	for branch := 0; branch < split.NumSubsets(); branch++ {
		branchNode, err := graph.CreateNode(fmt.Sprint("branch_", branch))
		if err != nil {
			return nil, nil, err
		}
		branchNode.Set("label", BranchDescription(split, ds, branch))
		branchNode.Set("shape", "box")
		if _, err = graph.CreateEdge("", rootNode, branchNode); err != nil {
			return nil, nil, err
		}
	}

	return graphViz, graph, nil
}

//RenderSplit draws a split into a file. figureType is one of png, svg and jpg.
func RenderSplit(split RankedSplit, ds *Dataset, figureType, filename string) error {
	graphvizType, ok := map[string]graphviz.Format{
		"png": graphviz.PNG,
		"svg": graphviz.SVG,
		"jpg": graphviz.JPG,
	}[figureType]
	if !ok {
		return malformed("unsupported figure type %q", figureType)
	}

	graphViz, graph, err := DrawGraph(split, ds)
	if err != nil {
		return err
	}
	defer func() {
		HandleError(graph.Close())
		HandleError(graphViz.Close())
	}()

	return graphViz.RenderFilename(graph, graphvizType, filename)
}
