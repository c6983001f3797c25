// Package planner renders an inventory snapshot and the user's plan
// parameters into the instruction payload sent to the generation service.
// Building is pure: no storage, no network, and byte-identical output for
// identical input.
package planner

import (
	"fmt"
	"strings"

	"fridgeplan/internal/models"
)

const strictClause = "  - 不得超出任何食材库存；如有超出请调整菜品使总用量不超库存。\n"

const looseClause = "  - 若所需量超出库存，请在文末新增章节 **需购买的额外食材**，列出不足食材及数量。\n"

// ItemLine renders one inventory item the way the prompt lists it.
func ItemLine(item models.Ingredient) string {
	return fmt.Sprintf("- %s (%g%s, %s, expiring %s)",
		item.Name, item.Quantity, item.Unit, item.Category, item.Expiry)
}

// Build renders the full meal-plan prompt for the given inventory snapshot,
// day count, and strictness mode. In strict mode the plan must never exceed
// on-hand quantities; otherwise shortfalls go into a clearly labeled
// "需购买的额外食材" section at the end.
func Build(inventory []models.Ingredient, days int, strict bool) string {
	lines := make([]string, 0, len(inventory))
	for _, item := range inventory {
		lines = append(lines, ItemLine(item))
	}
	invText := strings.Join(lines, "\n")

	stockRule := looseClause
	if strict {
		stockRule = strictClause
	}

	var b strings.Builder
	b.WriteString("You are a registered dietitian and creative home‑cook.\n")
	fmt.Fprintf(&b, "Design a %d-day meal plan for one male and one female in their 20s.\n\n", days)

	b.WriteString("【总体要求】\n")
	b.WriteString("1. 每天必须包含 早餐、午餐、晚餐。\n")
	b.WriteString("2. 餐食需营养均衡：足量蛋白质、复合碳水、蔬菜与健康脂肪；晚餐更轻盈、易消化。\n")
	b.WriteString("3. 可使用空气炸锅（首选）、榨汁机、豆浆机；尽量采用低油方式减少油烟。\n")
	b.WriteString("4. **避免把所有蔬菜都切成丝**，可根据需要切块、切片、切丁。\n")
	b.WriteString("5. 用中文输出，采用 Markdown 格式：天次标题和菜名加粗，条目用列表符号。\n\n")

	b.WriteString("【菜品格式（Markdown 示范）】\n")
	b.WriteString("**菜名**\n")
	b.WriteString("  - 食材（g/ml）\n")
	b.WriteString("  - 做法：步骤 1…步骤 3–5\n\n")

	b.WriteString("【配料与库存】\n")
	b.WriteString("下方是冰箱库存清单，请先对比再编排菜单，遵守以下规则：\n")
	b.WriteString(stockRule)
	b.WriteString("\n")

	b.WriteString("【每日总结】\n")
	b.WriteString("每天菜单后，用 1–2 句话说明该日如何满足营养需求。\n\n")

	b.WriteString("⚠️ 不要在每道菜后输出类似“【冰箱库存：米饭1000 g，使用后剩 600 g】”的提示。\n\n")

	b.WriteString("=== 冰箱库存 ===\n")
	b.WriteString(invText)

	return b.String()
}
