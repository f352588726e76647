// prompts.go holds the prompt text for each stage. System prompts are
// fixed; user prompts are assembled per run from the refined request
// and the schema snapshot.
package pipeline

import (
	"fmt"
	"strings"

	"github.com/queryforge/queryforge/ai"
)

const systemPromptRefine = `You rewrite user requests about a relational database into precise, canonical phrasing for SQL generation.

Rules:
- Map colloquial verbs onto SQL operations: "delete/remove a database" means dropping the database, "remove a table" means dropping the table, "add/save data" means inserting rows, "change/modify" means updating rows.
- Keep every identifier (database, table, and column names) exactly as the user wrote it.
- Do not invent tables, columns, or conditions the user did not mention.
- Reply with the rewritten request only: a single sentence, no commentary, no SQL.`

const systemPromptValidate = `You are a validation system. You must reason step-by-step before deciding.`

const systemPromptGenerate = `You are an expert PostgreSQL database developer. You can generate any type of SQL statement including SELECT, INSERT, UPDATE, DELETE, CREATE TABLE, ALTER TABLE, DROP TABLE, CREATE INDEX, and schema operations. Always provide complete, syntactically correct, and optimized SQL. Focus on performance and best practices.`

func refineMessages(request string) []ai.Message {
	return []ai.Message{
		{Role: "system", Content: systemPromptRefine},
		{Role: "user", Content: request},
	}
}

func validationMessages(refined, schemaName, schemaBlock, dataNotes string) []ai.Message {
	var sb strings.Builder
	sb.WriteString("You are a strict database guard. Analyze the user request against the provided schema.\n\n")
	fmt.Fprintf(&sb, "Schema name: %s\n", schemaName)
	sb.WriteString("Schema:\n")
	sb.WriteString(schemaBlock)
	if dataNotes != "" {
		sb.WriteString("\n")
		sb.WriteString(dataNotes)
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "\nUser request: %q\n", refined)
	sb.WriteString(`
INSTRUCTIONS:
1. IDENTIFY OPERATION: Is this SELECT, INSERT, UPDATE, DELETE, or CREATE/DROP?

2. IF SELECT / UPDATE / DELETE:
   - Check that the requested tables and columns exist in the schema.
   - STRICTLY MATCH specific names; reject if a referenced column or table is missing.

3. IF INSERT:
   - Check that the target table and columns exist.
   - ALLOW new data values ("insert a player named X" is VALID even if X is not in the data).
   - If the insert depends on another table that is listed above as having no data, return INVALID_ENTITY and mention the insufficient data.

4. IF CREATE:
   - ALLOW creating new tables, columns, or schemas.
   - Do NOT reject because the object does not exist yet; that is the point of CREATE.

5. If the request has nothing to do with this database, return IRRELEVANT.

OUTPUT FORMAT (you must follow this exactly):
Reasoning: [explain your thought process; identify the operation type first]
Status: [VALID | IRRELEVANT | INVALID_ENTITY]
Error: [if invalid, the error message; otherwise leave empty]
`)

	return []ai.Message{
		{Role: "system", Content: systemPromptValidate},
		{Role: "user", Content: sb.String()},
	}
}

// generationExamples are worked examples showing the SQL patterns we
// want (joins, CTEs, window functions, date handling). They use a
// sample movie-rental schema; the model must adapt the patterns to
// the actual schema it is given, never the example table names.
const generationExamples = `Here are examples of how to handle complex requests.
NOTE: these examples use a sample movie-rental database. Adapt the SQL
patterns (JOINs, CTEs, window functions) to the CURRENT SCHEMA above;
do NOT use table names from the examples unless they exist there.

Example 1 (aggregation and joins):
Q: "Find the name of each film category and the number of films within each category."
SQL:
SELECT c.name AS category_name, COUNT(fc.film_id) AS film_count
FROM category c
JOIN film_category fc ON c.category_id = fc.category_id
GROUP BY c.name
ORDER BY film_count DESC;

Example 2 (window functions with a CTE):
Q: "For each store, find the top 3 customers who have spent the most money."
SQL:
WITH customer_spending AS (
    SELECT c.store_id, c.customer_id, c.first_name, c.last_name, SUM(p.amount) AS total_spent
    FROM customer c
    JOIN payment p ON c.customer_id = p.customer_id
    GROUP BY c.store_id, c.customer_id, c.first_name, c.last_name
),
ranked_spending AS (
    SELECT store_id, first_name, last_name, total_spent,
           DENSE_RANK() OVER (PARTITION BY store_id ORDER BY total_spent DESC) AS ranking
    FROM customer_spending
)
SELECT * FROM ranked_spending WHERE ranking <= 3;

Example 3 (date extraction):
Q: "Get a monthly and yearly count of rentals."
SQL:
SELECT EXTRACT(YEAR FROM rental_date) AS rental_year,
       EXTRACT(MONTH FROM rental_date) AS rental_month,
       COUNT(rental_id) AS rental_count
FROM rental
GROUP BY rental_year, rental_month
ORDER BY rental_year DESC, rental_month DESC;

Example 4 (anti-join):
Q: "Find all films that have never been rented."
SQL:
SELECT f.title
FROM film f
LEFT JOIN inventory i ON f.film_id = i.film_id
LEFT JOIN rental r ON i.inventory_id = r.inventory_id
WHERE r.rental_id IS NULL;`

func generationMessages(refined, schemaName, schemaBlock string) []ai.Message {
	var sb strings.Builder
	sb.WriteString("Convert the following request into a complete, optimized PostgreSQL statement.\n\n")
	sb.WriteString(`Guidelines:
- Use proper PostgreSQL syntax and data types (VARCHAR, INT, TIMESTAMP, etc.)
- Include appropriate constraints (PRIMARY KEY, FOREIGN KEY, NOT NULL, UNIQUE)
- For SELECT: use efficient JOINs and only the columns that are needed
- For INSERT: supply values in the declared column order and handle types correctly
- For UPDATE/DELETE: always include WHERE conditions to prevent accidental mass operations
- Always end the statement with a semicolon (;)
- Output exactly one statement
`)
	fmt.Fprintf(&sb, "\nCurrent schema: %s\nTables:\n%s\n", schemaName, schemaBlock)
	fmt.Fprintf(&sb, "\nUser request: %s\n\n", refined)
	sb.WriteString(generationExamples)
	sb.WriteString("\n\nGenerate the appropriate SQL statement:")

	return []ai.Message{
		{Role: "system", Content: systemPromptGenerate},
		{Role: "user", Content: sb.String()},
	}
}
