// Copyright 2025 Magnus Pierre
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package windows

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/magpierre/datagrid/internal/loader"
)

// TreeNodeType is the level of a node in the navigation tree.
type TreeNodeType string

const (
	NodeTypeShare  TreeNodeType = "share"
	NodeTypeSchema TreeNodeType = "schema"
	NodeTypeTable  TreeNodeType = "table"
)

// TreeNode is one share, schema or table.
type TreeNode struct {
	ID       string
	NodeType TreeNodeType
	Name     string
	// Ref is set on table nodes.
	Ref      loader.TableRef
	Children []string
}

// NavigationTree holds the share -> schema -> table hierarchy of a Delta
// Sharing profile.
type NavigationTree struct {
	nodes   map[string]*TreeNode
	rootIDs []string
	mu      sync.RWMutex
}

// NewNavigationTree returns an empty tree.
func NewNavigationTree() *NavigationTree {
	return &NavigationTree{nodes: make(map[string]*TreeNode)}
}

// GenerateNodeID creates a unique ID for a tree node.
func GenerateNodeID(nodeType TreeNodeType, share, schema, table string) string {
	switch nodeType {
	case NodeTypeShare:
		return fmt.Sprintf("share:%s", share)
	case NodeTypeSchema:
		return fmt.Sprintf("share:%s:schema:%s", share, schema)
	case NodeTypeTable:
		return fmt.Sprintf("share:%s:schema:%s:table:%s", share, schema, table)
	default:
		return ""
	}
}

// ParseNodeID extracts the components of a node ID.
func ParseNodeID(nodeID string) (nodeType TreeNodeType, share, schema, table string) {
	parts := strings.Split(nodeID, ":")

	if len(parts) >= 2 && parts[0] == "share" {
		nodeType = NodeTypeShare
		share = parts[1]
	}
	if len(parts) >= 4 && parts[2] == "schema" {
		nodeType = NodeTypeSchema
		schema = parts[3]
	}
	if len(parts) >= 6 && parts[4] == "table" {
		nodeType = NodeTypeTable
		table = parts[5]
	}
	return
}

// LoadShares lists every table of the profile and rebuilds the tree.
func (nt *NavigationTree) LoadShares(profile string, timeout time.Duration) error {
	ctx, cancel := createTimeoutContext(timeout)
	defer cancel()

	refs, err := loader.ListTables(ctx, profile)
	if err != nil {
		return err
	}
	nt.SetTables(refs)
	return nil
}

// SetTables rebuilds the tree from a flat table list, keeping list order
// within each level.
func (nt *NavigationTree) SetTables(refs []loader.TableRef) {
	nt.mu.Lock()
	defer nt.mu.Unlock()

	nt.nodes = make(map[string]*TreeNode)
	nt.rootIDs = nil

	for _, ref := range refs {
		shareID := GenerateNodeID(NodeTypeShare, ref.Share, "", "")
		share, ok := nt.nodes[shareID]
		if !ok {
			share = &TreeNode{ID: shareID, NodeType: NodeTypeShare, Name: ref.Share}
			nt.nodes[shareID] = share
			nt.rootIDs = append(nt.rootIDs, shareID)
		}

		schemaID := GenerateNodeID(NodeTypeSchema, ref.Share, ref.Schema, "")
		schema, ok := nt.nodes[schemaID]
		if !ok {
			schema = &TreeNode{ID: schemaID, NodeType: NodeTypeSchema, Name: ref.Schema}
			nt.nodes[schemaID] = schema
			share.Children = append(share.Children, schemaID)
		}

		tableID := GenerateNodeID(NodeTypeTable, ref.Share, ref.Schema, ref.Name)
		if _, ok := nt.nodes[tableID]; ok {
			continue
		}
		nt.nodes[tableID] = &TreeNode{ID: tableID, NodeType: NodeTypeTable, Name: ref.Name, Ref: ref}
		schema.Children = append(schema.Children, tableID)
	}
}

// GetChildren returns the children of nodeID, or the shares for the root.
func (nt *NavigationTree) GetChildren(nodeID widget.TreeNodeID) []widget.TreeNodeID {
	nt.mu.RLock()
	defer nt.mu.RUnlock()

	if nodeID == "" {
		return nt.rootIDs
	}
	if node, ok := nt.nodes[nodeID]; ok {
		return node.Children
	}
	return nil
}

// IsBranch reports whether nodeID can have children.
func (nt *NavigationTree) IsBranch(nodeID widget.TreeNodeID) bool {
	if nodeID == "" {
		return true
	}
	node := nt.GetNode(nodeID)
	return node != nil && node.NodeType != NodeTypeTable
}

// GetNode retrieves a node by ID.
func (nt *NavigationTree) GetNode(nodeID widget.TreeNodeID) *TreeNode {
	nt.mu.RLock()
	defer nt.mu.RUnlock()
	return nt.nodes[nodeID]
}

// NewWidget builds a Fyne tree over nt. onTable runs when a table node is
// selected.
func (nt *NavigationTree) NewWidget(onTable func(loader.TableRef)) *widget.Tree {
	tree := widget.NewTree(
		nt.GetChildren,
		nt.IsBranch,
		func(branch bool) fyne.CanvasObject {
			return container.NewHBox(widget.NewIcon(theme.DocumentIcon()), widget.NewLabel("template"))
		},
		nt.UpdateNodeDisplay,
	)
	tree.OnSelected = func(uid widget.TreeNodeID) {
		if node := nt.GetNode(uid); node != nil && node.NodeType == NodeTypeTable {
			onTable(node.Ref)
		}
	}
	return tree
}

// UpdateNodeDisplay sets the icon and label of a tree row.
func (nt *NavigationTree) UpdateNodeDisplay(nodeID widget.TreeNodeID, branch bool, obj fyne.CanvasObject) {
	node := nt.GetNode(nodeID)
	if node == nil {
		return
	}
	box, ok := obj.(*fyne.Container)
	if !ok || len(box.Objects) < 2 {
		return
	}

	if icon, ok := box.Objects[0].(*widget.Icon); ok {
		switch node.NodeType {
		case NodeTypeShare:
			icon.SetResource(theme.FolderOpenIcon())
		case NodeTypeSchema:
			icon.SetResource(theme.FolderIcon())
		case NodeTypeTable:
			icon.SetResource(theme.DocumentIcon())
		}
	}
	if label, ok := box.Objects[1].(*widget.Label); ok {
		label.SetText(node.Name)
	}
}
