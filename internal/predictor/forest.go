package predictor

import (
	"math"
	"math/rand"
	"sort"

	"megasena-bot/internal/config"
)

// Forest 回归随机森林：CART回归树 + bootstrap聚合
// 语料中所有模型均为手写实现，这里同样不依赖外部机器学习库
type Forest struct {
	cfg   config.Forest
	trees []*treeNode
}

// treeNode 回归树节点
type treeNode struct {
	leaf      bool
	value     float64 // 叶节点输出（样本均值）
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
}

// TrainForest 训练随机森林
// 每棵树在bootstrap重采样上生长，分裂准则为平方误差最小化
func TrainForest(features [][]float64, targets []float64, cfg config.Forest) *Forest {
	rng := rand.New(rand.NewSource(cfg.Seed))
	forest := &Forest{
		cfg:   cfg,
		trees: make([]*treeNode, cfg.Trees),
	}

	for t := 0; t < cfg.Trees; t++ {
		indices := bootstrapSample(len(targets), rng)
		forest.trees[t] = buildTree(features, targets, indices, 0, cfg)
	}

	return forest
}

// Predict 预测单个样本：所有树输出的平均值
func (f *Forest) Predict(sample []float64) float64 {
	sum := 0.0
	for _, tree := range f.trees {
		sum += tree.predict(sample)
	}
	return sum / float64(len(f.trees))
}

// Score 计算保留集上的决定系数R²
// 保留集为空或目标方差为零时返回0（评分只做参考，从不阻断预测）
func (f *Forest) Score(features [][]float64, targets []float64) float64 {
	if len(targets) == 0 {
		return 0
	}

	mean := 0.0
	for _, y := range targets {
		mean += y
	}
	mean /= float64(len(targets))

	ssRes, ssTot := 0.0, 0.0
	for i, y := range targets {
		pred := f.Predict(features[i])
		ssRes += (y - pred) * (y - pred)
		ssTot += (y - mean) * (y - mean)
	}

	if ssTot == 0 {
		return 0
	}
	return 1 - ssRes/ssTot
}

// predict 沿树下行到叶节点
func (n *treeNode) predict(sample []float64) float64 {
	node := n
	for !node.leaf {
		if sample[node.feature] <= node.threshold {
			node = node.left
		} else {
			node = node.right
		}
	}
	return node.value
}

// bootstrapSample 有放回重采样
func bootstrapSample(n int, rng *rand.Rand) []int {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = rng.Intn(n)
	}
	return indices
}

// buildTree 递归生长回归树
func buildTree(features [][]float64, targets []float64, indices []int, depth int, cfg config.Forest) *treeNode {
	if depth >= cfg.MaxDepth || len(indices) < cfg.MinSamplesSplit || isConstant(targets, indices) {
		return leafNode(targets, indices)
	}

	feature, threshold, ok := findBestSplit(features, targets, indices, cfg.MinSamplesLeaf)
	if !ok {
		return leafNode(targets, indices)
	}

	var leftIdx, rightIdx []int
	for _, idx := range indices {
		if features[idx][feature] <= threshold {
			leftIdx = append(leftIdx, idx)
		} else {
			rightIdx = append(rightIdx, idx)
		}
	}

	return &treeNode{
		feature:   feature,
		threshold: threshold,
		left:      buildTree(features, targets, leftIdx, depth+1, cfg),
		right:     buildTree(features, targets, rightIdx, depth+1, cfg),
	}
}

// leafNode 以样本均值作为叶节点输出
func leafNode(targets []float64, indices []int) *treeNode {
	sum := 0.0
	for _, idx := range indices {
		sum += targets[idx]
	}
	return &treeNode{
		leaf:  true,
		value: sum / float64(len(indices)),
	}
}

// isConstant 检查节点内目标值是否全部相同
func isConstant(targets []float64, indices []int) bool {
	first := targets[indices[0]]
	for _, idx := range indices[1:] {
		if targets[idx] != first {
			return false
		}
	}
	return true
}

// findBestSplit 穷举所有特征寻找平方误差最小的分裂点
// 对每个特征先按取值排序，用前缀和在一次扫描内评估所有候选阈值
func findBestSplit(features [][]float64, targets []float64, indices []int, minLeaf int) (int, float64, bool) {
	n := len(indices)
	if n < 2*minLeaf {
		return 0, 0, false
	}

	bestSSE := math.Inf(1)
	bestFeature := -1
	bestThreshold := 0.0

	numFeatures := len(features[indices[0]])
	sorted := make([]int, n)

	for f := 0; f < numFeatures; f++ {
		copy(sorted, indices)
		sort.Slice(sorted, func(i, j int) bool {
			return features[sorted[i]][f] < features[sorted[j]][f]
		})

		totalSum, totalSq := 0.0, 0.0
		for _, idx := range sorted {
			y := targets[idx]
			totalSum += y
			totalSq += y * y
		}

		leftSum, leftSq := 0.0, 0.0
		for k := 0; k < n-1; k++ {
			y := targets[sorted[k]]
			leftSum += y
			leftSq += y * y

			// 相邻取值相同则不能在此处分裂
			current := features[sorted[k]][f]
			next := features[sorted[k+1]][f]
			if current == next {
				continue
			}

			left := k + 1
			right := n - left
			if left < minLeaf || right < minLeaf {
				continue
			}

			rightSum := totalSum - leftSum
			rightSq := totalSq - leftSq
			sse := (leftSq - leftSum*leftSum/float64(left)) +
				(rightSq - rightSum*rightSum/float64(right))

			if sse < bestSSE {
				bestSSE = sse
				bestFeature = f
				bestThreshold = (current + next) / 2
			}
		}
	}

	if bestFeature < 0 {
		return 0, 0, false
	}
	return bestFeature, bestThreshold, true
}
