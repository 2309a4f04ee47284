// Package commands contains the core logic for describing a filesystem tree.
package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/treesense/internal/types"
	"github.com/temirov/treesense/internal/utils"
)

const (
	// errorExpandRootFormat is used when the root path cannot be expanded.
	errorExpandRootFormat = "expanding root %s: %w"
	// errorAbsolutePathFormat is used when the absolute path cannot be determined.
	errorAbsolutePathFormat = "getting absolute path for %s: %w"
	// errorStatRootFormat is used when the root cannot be inspected.
	errorStatRootFormat = "inspecting root %s: %w"
	// errorRootNotFoundFormat is used when the root does not exist.
	errorRootNotFoundFormat = "%w: %s"

	warningUnreadableDirectory = "skipping unreadable directory"
	warningUnreadableEntry     = "skipping unreadable entry"
	warningCycleDetected       = "symlink cycle detected"
	warningSizeUnavailable     = "unable to stat file for size"
)

// ErrRootNotFound reports a walk root that does not exist.
var ErrRootNotFound = errors.New("root path does not exist")

// fileStat follows symlinks when resolving link targets and file sizes.
var fileStat = os.Stat

// Build describes rootPath as a tree. A root that is not a directory yields a single file node.
// Per-entry failures are folded into the tree as unknown nodes rather than returned.
func (treeBuilder *TreeBuilder) Build(rootPath string) (types.TreeNode, error) {
	expandedRootPath, expandError := utils.ExpandHomeDirectory(rootPath)
	if expandError != nil {
		return nil, fmt.Errorf(errorExpandRootFormat, rootPath, expandError)
	}
	absoluteRootPath, absolutePathError := filepath.Abs(expandedRootPath)
	if absolutePathError != nil {
		return nil, fmt.Errorf(errorAbsolutePathFormat, rootPath, absolutePathError)
	}

	rootInfo, rootStatError := os.Stat(absoluteRootPath)
	if rootStatError != nil {
		if errors.Is(rootStatError, fs.ErrNotExist) {
			return nil, fmt.Errorf(errorRootNotFoundFormat, ErrRootNotFound, absoluteRootPath)
		}
		return nil, fmt.Errorf(errorStatRootFormat, absoluteRootPath, rootStatError)
	}

	walk := newTreeWalk(treeBuilder)
	rootName := filepath.Base(absoluteRootPath)
	if !rootInfo.IsDir() {
		rootLinkInfo, rootLinkError := os.Lstat(absoluteRootPath)
		isLink := rootLinkError == nil && rootLinkInfo.Mode()&fs.ModeSymlink != 0
		return walk.fileNode(absoluteRootPath, rootName, rootName, isLink), nil
	}
	return walk.directoryNode(absoluteRootPath, types.RootRelativePath, rootName, 0), nil
}

// treeWalk carries the state of a single Build call. The visited set is
// written only by the walking goroutine and discarded with the walk.
type treeWalk struct {
	options  *TreeBuilder
	excluded map[string]struct{}
	visited  map[fileIdentity]struct{}
	logger   *zap.Logger
}

func newTreeWalk(treeBuilder *TreeBuilder) *treeWalk {
	excluded := make(map[string]struct{}, len(treeBuilder.Excludes))
	for _, excludedName := range treeBuilder.Excludes {
		excluded[excludedName] = struct{}{}
	}
	logger := treeBuilder.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &treeWalk{
		options:  treeBuilder,
		excluded: excluded,
		visited:  make(map[fileIdentity]struct{}),
		logger:   logger,
	}
}

func (walk *treeWalk) shouldSkip(entryName string) bool {
	if _, isExcluded := walk.excluded[entryName]; isExcluded {
		return true
	}
	return !walk.options.IncludeHidden && utils.IsHiddenName(entryName)
}

// directoryNode describes the directory at absolutePath found at the given depth (root is 0).
func (walk *treeWalk) directoryNode(absolutePath string, relativePath string, name string, depth int) types.TreeNode {
	node := &types.DirectoryNode{
		Name:     name,
		RelPath:  relativePath,
		Children: []types.TreeNode{},
	}
	if walk.options.MaxDepth > 0 && depth > walk.options.MaxDepth {
		return node
	}

	if walk.options.FollowSymlinks {
		identity, identityError := identityOf(absolutePath)
		if identityError == nil {
			if _, alreadyVisited := walk.visited[identity]; alreadyVisited {
				walk.logger.Debug(warningCycleDetected, zap.String("path", absolutePath))
				node.CycleDetected = true
				return node
			}
			walk.visited[identity] = struct{}{}
		}
	}

	directoryEntries, readDirectoryError := os.ReadDir(absolutePath)
	if readDirectoryError != nil {
		walk.logger.Warn(warningUnreadableDirectory, zap.String("path", absolutePath), zap.Error(readDirectoryError))
		return &types.UnknownNode{Name: name, RelPath: relativePath, Reason: failureReason(readDirectoryError)}
	}

	candidates := make([]childEntry, 0, len(directoryEntries))
	for _, directoryEntry := range directoryEntries {
		entryName := directoryEntry.Name()
		if walk.shouldSkip(entryName) {
			continue
		}
		candidates = append(candidates, walk.resolveEntry(directoryEntry, absolutePath, relativePath))
	}
	sortChildEntries(candidates)

	for _, candidate := range candidates {
		switch {
		case candidate.failure != nil:
			node.Children = append(node.Children, candidate.failure)
		case candidate.isDirectory:
			node.Children = append(node.Children, walk.directoryNode(candidate.absolutePath, candidate.relativePath, candidate.name, depth+1))
		default:
			node.Children = append(node.Children, walk.fileNode(candidate.absolutePath, candidate.relativePath, candidate.name, candidate.isLink))
		}
	}

	sortTreeNodes(node.Children)
	return node
}

// childEntry is a listed entry with its kind resolved, waiting to be described.
type childEntry struct {
	name         string
	absolutePath string
	relativePath string
	isLink       bool
	isDirectory  bool
	failure      types.TreeNode
}

func (walk *treeWalk) resolveEntry(directoryEntry fs.DirEntry, parentPath string, parentRelativePath string) childEntry {
	entryName := directoryEntry.Name()
	candidate := childEntry{
		name:         entryName,
		absolutePath: filepath.Join(parentPath, entryName),
		relativePath: utils.JoinRelativePath(parentRelativePath, entryName),
		isLink:       directoryEntry.Type()&fs.ModeSymlink != 0,
		isDirectory:  directoryEntry.IsDir(),
	}
	if !candidate.isLink || !walk.options.FollowSymlinks {
		return candidate
	}
	targetInfo, targetStatError := fileStat(candidate.absolutePath)
	switch {
	case targetStatError == nil:
		candidate.isDirectory = targetInfo.IsDir()
	case errors.Is(targetStatError, fs.ErrPermission):
		walk.logger.Warn(warningUnreadableEntry, zap.String("path", candidate.absolutePath), zap.Error(targetStatError))
		candidate.failure = &types.UnknownNode{
			Name:    entryName,
			RelPath: candidate.relativePath,
			Reason:  types.PermissionDeniedReason,
		}
	}
	return candidate
}

// sortChildEntries fixes the visiting order: real directories before links and files, then by
// case-insensitive name. The visited set makes the first directory reached the expanded one.
func sortChildEntries(candidates []childEntry) {
	sort.SliceStable(candidates, func(leftIndex, rightIndex int) bool {
		left, right := candidates[leftIndex], candidates[rightIndex]
		leftIsRealDirectory := left.isDirectory && !left.isLink
		rightIsRealDirectory := right.isDirectory && !right.isLink
		if leftIsRealDirectory != rightIsRealDirectory {
			return leftIsRealDirectory
		}
		return lessByFoldedName(left.name, right.name)
	})
}

func (walk *treeWalk) fileNode(absolutePath string, relativePath string, name string, isLink bool) types.TreeNode {
	node := &types.FileNode{
		Name:      name,
		RelPath:   relativePath,
		IsLink:    isLink,
		Extension: utils.FileExtension(name),
	}
	if !walk.options.ShowSizes {
		return node
	}
	fileInfo, statError := fileStat(absolutePath)
	if statError != nil {
		walk.logger.Debug(warningSizeUnavailable, zap.String("path", absolutePath), zap.Error(statError))
		node.Size = types.UnknownSizePlaceholder
		return node
	}
	sizeBytes := fileInfo.Size()
	node.Size = utils.FormatHumanSize(sizeBytes)
	node.SizeBytes = &sizeBytes
	return node
}

// sortTreeNodes orders directories before every other node, then by case-insensitive name.
func sortTreeNodes(nodes []types.TreeNode) {
	sort.SliceStable(nodes, func(leftIndex, rightIndex int) bool {
		left, right := nodes[leftIndex], nodes[rightIndex]
		leftIsDirectory := left.NodeType() == types.NodeTypeDirectory
		rightIsDirectory := right.NodeType() == types.NodeTypeDirectory
		if leftIsDirectory != rightIsDirectory {
			return leftIsDirectory
		}
		return lessByFoldedName(left.NodeName(), right.NodeName())
	})
}

func lessByFoldedName(leftName string, rightName string) bool {
	leftFolded, rightFolded := strings.ToLower(leftName), strings.ToLower(rightName)
	if leftFolded != rightFolded {
		return leftFolded < rightFolded
	}
	return leftName < rightName
}

func failureReason(failure error) string {
	if errors.Is(failure, fs.ErrPermission) {
		return types.PermissionDeniedReason
	}
	var pathError *fs.PathError
	if errors.As(failure, &pathError) {
		return pathError.Err.Error()
	}
	return failure.Error()
}
