package generate

import "fmt"

const systemPrompt = "You are a helpful assistant that generates accurate JSON structures for product review forms."

const promptTemplate = `You are a helpful assistant that creates review form structures for different product types.
Generate a review form structure for %q.

IMPORTANT GUIDELINES:
1. DO NOT INCLUDE ANY FIELDS THAT REQUEST PERSONALLY IDENTIFIABLE INFORMATION (PII) such as:
   - Name
   - Email
   - Phone number
   - Address
   - Location
   - Social media handles
   - User ID
   - Any personal contact information

2. ORGANIZE THE FORM LOGICALLY:
   - Start with a "General" section for overall ratings and impressions
   - Group related fields into clear, logical sections
   - Arrange sections in order of importance (most important first)
   - Keep the form concise (no more than 10-15 fields total)
   - Ensure each section has a clear purpose

3. FOCUS ON PRODUCT EXPERIENCE:
   - Include fields about product quality, performance, and value
   - Ask about specific features relevant to the product type
   - Include both objective (ratings) and subjective (comments) fields

Return the response as a JSON object with the following structure:
{
  "title": "string",
  "sections": ["string"],
  "fields": [
    {
      "name": "string (camelCase, e.g. overallRating)",
      "label": "string (user-friendly, e.g. Overall Rating)",
      "type": "string (one of: text, textarea, number, email, select, radio, checkbox, date, range, rating)",
      "required": boolean,
      "options": [{ "label": "string", "value": "string" }],
      "placeholder": "string (optional)",
      "min": number (optional, for number/range),
      "max": number (optional, for number/range),
      "section": "string (always provide this)"
    }
  ]
}

Always include these standard fields in the "General" section:
- reviewTitle (text type, required): "Review Title"
- overallRating (rating type, required): "Overall Rating"
- recommendProduct (radio type, required): "Would You Recommend This Product?" with options Yes/No/Maybe
- pros (textarea type): "What You Liked"
- cons (textarea type): "What Could Be Improved"

Then add product-specific fields that make sense for %q in logical sections.
For ratings, use the "rating" type (1-5 scale).
For "select" and "radio" types, always provide the options array.
Make field labels clear, descriptive, and user-friendly.`

// buildPrompt renders the generation instructions for a product type. Only
// the strict prompt variant exists: PII ban, "General" section first, and a
// hard cap on field count.
func buildPrompt(productType string) string {
	return fmt.Sprintf(promptTemplate, productType, productType)
}
