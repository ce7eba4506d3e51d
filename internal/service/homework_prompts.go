package service

import "fmt"

const analysisSystemPrompt = "Bạn là giáo viên chuyên nghiệp, hãy phân tích bài làm của học sinh một cách chi tiết và có tính xây dựng."

const chatSystemPrompt = "Bạn là giáo viên AI thân thiện, hỗ trợ học sinh học tập hiệu quả."

func analysisPrompt(subject, content string) string {
	return fmt.Sprintf(`Phân tích bài làm môn %s sau đây:
%s

Hãy phân tích theo format sau (SỬ DỤNG LaTeX để viết công thức toán học):

**PHÂN TÍCH BÀI LÀM**

**1. Lỗi sai đã phát hiện:**
- Liệt kê từng lỗi cụ thể

**2. Giải thích lỗi sai:**
- Giải thích tại sao sai, nguyên nhân

**3. Lời giải đúng:**
- Trình bày lời giải từng bước rõ ràng
- Sử dụng LaTeX cho công thức: $5x + 6 = 0$
- Ví dụ: $5x + 6 = 0 \Rightarrow 5x = -6 \Rightarrow x = \frac{-6}{5}$

**4. Đánh giá điểm: [X]/10**
- Giải thích điểm số cụ thể

**5. Đề xuất cải thiện:**
- Đưa ra gợi ý học tập cụ thể

QUAN TRỌNG:
- Sử dụng $...$ cho công thức inline: $x = 2$
- Sử dụng $$...$$ cho công thức display (khối): $$x = \frac{-b \pm \sqrt{b^2-4ac}}{2a}$$
- Trả lời bằng tiếng Việt, sử dụng LaTeX cho tất cả công thức toán học.`, subject, content)
}

func chatPrompt(subject, content, analysis, message string) string {
	if analysis == "" {
		analysis = "Chưa có phân tích"
	}

	return fmt.Sprintf(`Bạn là giáo viên AI thân thiện, đang hỗ trợ học sinh về bài làm môn %s.

Bài làm của học sinh:
%s

Phân tích trước đó:
%s

Câu hỏi của học sinh: %s

Hãy trả lời câu hỏi một cách:
- Thân thiện, dễ hiểu
- Liên quan đến bài làm
- Sử dụng LaTeX cho công thức: $x = 2$ hoặc $$formula$$
- Giải thích chi tiết nhưng ngắn gọn
- Khuyến khích học sinh

Trả lời bằng tiếng Việt:`, subject, content, analysis, message)
}
